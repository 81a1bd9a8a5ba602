package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/seed"
	"github.com/MrSnakeDoc/buckets/internal/store"
)

var createDBCmd = &cobra.Command{
	Use:   "create-db",
	Short: "Drop and recreate the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e := loadEnv()
		return withStore(e, func(st *store.Store) error {
			if err := st.Reset(cmd.Context()); err != nil {
				return err
			}
			e.log.Info("database recreated", logger.String("dialect", string(st.Dialect())))
			fmt.Fprintln(cmd.OutOrStdout(), "Database tables recreated.")
			return nil
		})
	},
}

var seedProdDBCmd = &cobra.Command{
	Use:   "seed-prod-db",
	Short: "Insert the data required to run (the Inbox bucket)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e := loadEnv()
		return withStore(e, func(st *store.Store) error {
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			res, err := seed.RequiredData(cmd.Context(), st)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

var seedFile string

var seedTestDBCmd = &cobra.Command{
	Use:   "seed-test-db",
	Short: "Insert the required data and a sample data set",
	Long: `Inserts the Inbox bucket and the sample buckets and items. The sample
set is read from --file, or from the built-in fixture when omitted.
Buckets whose title already exists are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fx, err := loadFixture(seedFile)
		if err != nil {
			return err
		}

		e := loadEnv()
		return withStore(e, func(st *store.Store) error {
			if err := st.Migrate(cmd.Context()); err != nil {
				return err
			}
			res, err := seed.SampleData(cmd.Context(), st, fx, time.Now())
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		})
	},
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.LoadDefault()
	}
	return seed.NewLoader(path).Load()
}

func printResult(cmd *cobra.Command, res seed.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d bucket(s) and %d item(s), skipped %d existing bucket(s).\n",
		res.Buckets, res.Items, res.Skipped)
}

func init() {
	seedTestDBCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixture to load instead of the built-in sample")
}
