// Package commands implements the gameshelf admin CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/gameshelf/internal/config"
	"github.com/marshallshelly/gameshelf/pkg/store"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gameshelf",
	Short: "Gameshelf - video game catalog datastore administration",
	Long: `Gameshelf manages the datastore of a video game catalog tracker:
platforms, video games, genres, publications, and per-user game records.

The CLI applies the catalog schema and can seed a small demo catalog.
The database connection URL comes from --db, the DATABASE_URL environment
variable, or a .env file in the working directory.`,
	Version: "1.2.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// connect resolves the connection URL and opens a store on it. The caller
// closes the returned pool.
func connect(ctx context.Context) (*store.Store, *pgxpool.Pool, error) {
	url := dbURL
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		url = cfg.DatabaseURL
	}
	if url == "" {
		return nil, nil, fmt.Errorf("no database URL: pass --db or set DATABASE_URL")
	}

	return store.Connect(ctx, url)
}
