package commands

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/buckets/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	e := loadEnv()
	defer func() { _ = e.log.Sync() }()

	a, err := app.New(cmd.Context(), e.cfg, e.log)
	if err != nil {
		return err
	}
	return a.Run()
}
