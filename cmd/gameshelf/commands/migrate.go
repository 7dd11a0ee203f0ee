package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/gameshelf/cmd/gameshelf/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the catalog schema",
	Long:  `Creates the catalog tables and constraints. Idempotent: existing tables are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, pool, err := connect(ctx)
		if err != nil {
			output.Error("connection failed: %v", err)
			return err
		}
		defer pool.Close()

		if err := s.ApplySchema(ctx); err != nil {
			output.Error("schema apply failed: %v", err)
			return err
		}

		output.Success("catalog schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
