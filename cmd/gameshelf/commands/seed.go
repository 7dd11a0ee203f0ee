package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/gameshelf/cmd/gameshelf/output"
	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small demo catalog",
	Long:  `Seeds a handful of platforms, video games, genres, and publications. Safe to re-run: rows that already exist are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, pool, err := connect(ctx)
		if err != nil {
			output.Error("connection failed: %v", err)
			return err
		}
		defer pool.Close()

		if err := seed(ctx, s); err != nil {
			output.Error("seed failed: %v", err)
			return err
		}

		output.Success("demo catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(ctx context.Context, s *store.Store) error {
	platforms := []catalog.Platform{
		{Code: "PC", Description: "Windows, Linux and macOS", Abbreviation: "PC"},
		{Code: "PS5", Description: "Sony PlayStation 5", Abbreviation: "PS5"},
		{Code: "SWITCH", Description: "Nintendo Switch", Abbreviation: "NSW"},
	}
	for _, p := range platforms {
		if err := ignoreDuplicate(s.CreatePlatform(ctx, p)); err != nil {
			return err
		}
		if verbose {
			output.Muted("platform %s", p.Code)
		}
	}

	genres := map[string]string{
		"Action":     "Fast-paced games centered on combat and reflexes",
		"RPG":        "Role-playing games with character progression",
		"Platformer": "Jumping and climbing through level-based worlds",
	}
	genreIDs := make(map[string]int)
	for name, description := range genres {
		id, err := s.CreateGenre(ctx, catalog.Genre{Name: name, Description: description})
		if errors.Is(err, store.ErrDuplicateEntry) {
			continue
		}
		if err != nil {
			return err
		}
		genreIDs[name] = id
	}

	games := []struct {
		game     catalog.VideoGame
		genres   []string
		released map[string]time.Time
	}{
		{
			game:   catalog.VideoGame{Name: "Hollow Depths", Description: "Subterranean exploration platformer"},
			genres: []string{"Action", "Platformer"},
			released: map[string]time.Time{
				"PC":     time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
				"SWITCH": time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			game:   catalog.VideoGame{Name: "Starworn", Description: "Open-world role-playing epic"},
			genres: []string{"RPG"},
			released: map[string]time.Time{
				"PC":  time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
				"PS5": time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	for _, g := range games {
		id, err := findOrCreateVideoGame(ctx, s, g.game)
		if err != nil {
			return err
		}
		for _, genreName := range g.genres {
			genreID, ok := genreIDs[genreName]
			if !ok {
				continue
			}
			if err := ignoreDuplicate(s.AddCategory(ctx, catalog.Category{GenreID: genreID, VideoGameID: id})); err != nil {
				return err
			}
		}
		for code, date := range g.released {
			_, err := s.CreatePublication(ctx, catalog.Publication{
				PlatformCode: code,
				VideoGameID:  id,
				ReleaseDate:  date,
			})
			if err := ignoreDuplicate(err); err != nil {
				return err
			}
		}
		if verbose {
			output.Muted("video game %q (id %d)", g.game.Name, id)
		}
	}

	return nil
}

// findOrCreateVideoGame keeps the seed idempotent: video game names carry no
// unique constraint, so an existing title is reused instead of re-inserted.
func findOrCreateVideoGame(ctx context.Context, s *store.Store, vg catalog.VideoGame) (int, error) {
	existing, err := s.ListVideoGames(ctx, store.VideoGameFilter{NameContains: &vg.Name})
	if err != nil {
		return 0, err
	}
	for _, e := range existing {
		if e.Name == vg.Name {
			return e.ID, nil
		}
	}
	return s.CreateVideoGame(ctx, vg)
}

func ignoreDuplicate(err error) error {
	if errors.Is(err, store.ErrDuplicateEntry) {
		return nil
	}
	return err
}
