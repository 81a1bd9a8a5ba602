package commands

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/buckets/internal/app"
	"github.com/MrSnakeDoc/buckets/internal/config"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "buckets",
	Short: "A personal task tracker organized in buckets",
	Long: `buckets serves a small web application to collect tasks ("items") in
named "buckets". Without a subcommand it runs the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// env bundles what every subcommand needs.
type env struct {
	cfg *config.Config
	log logger.Logger
}

func loadEnv() env {
	cfg := config.Load()
	return env{cfg: cfg, log: logger.New(cfg.LogLevel, cfg.PrettyLog)}
}

// withStore opens the configured database, runs fn and closes it again.
func withStore(e env, fn func(st *store.Store) error) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	st, err := app.OpenStore(e.cfg, e.log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(st)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createDBCmd)
	rootCmd.AddCommand(seedProdDBCmd)
	rootCmd.AddCommand(seedTestDBCmd)
	rootCmd.AddCommand(versionCmd)
}
