//go:build integration
// +build integration

package gameshelf_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
	"github.com/marshallshelly/gameshelf/pkg/store"
)

// setupTestDB starts a PostgreSQL container, connects, and applies the
// catalog schema. The cleanup function tears the container down.
func setupTestDB(t *testing.T) (*store.Store, *pgxpool.Pool, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("gameshelf"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	s, pool, err := store.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	if err := s.ApplySchema(ctx); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return s, pool, cleanup
}

func ptr[T any](v T) *T { return &v }

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func TestIntegration_VideoGameFiltering(t *testing.T) {
	s, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	rpg, err := s.CreateGenre(ctx, catalog.Genre{Name: "RPG"})
	if err != nil {
		t.Fatalf("Failed to create genre: %v", err)
	}
	action, _ := s.CreateGenre(ctx, catalog.Genre{Name: "Action"})
	indie, _ := s.CreateGenre(ctx, catalog.Genre{Name: "Indie"})
	puzzle, _ := s.CreateGenre(ctx, catalog.Genre{Name: "Puzzle"})

	withGenres := func(name string, genres ...int) int {
		id, err := s.CreateVideoGame(ctx, catalog.VideoGame{Name: name})
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		for _, g := range genres {
			if err := s.AddCategory(ctx, catalog.Category{GenreID: g, VideoGameID: id}); err != nil {
				t.Fatalf("Failed to categorize %s: %v", name, err)
			}
		}
		return id
	}

	sprawl := withGenres("Starfield Sprawl", rpg, action, indie)
	raiders := withGenres("Cavern Raiders", rpg, action)
	withGenres("Block Garden", rpg, puzzle)

	t.Run("name substring, case-insensitive", func(t *testing.T) {
		games, err := s.ListVideoGames(ctx, store.VideoGameFilter{NameContains: ptr("sPrAwL")})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 1 || games[0].ID != sprawl {
			t.Errorf("Expected only Starfield Sprawl, got %v", games)
		}
	})

	t.Run("genre intersection requires every genre", func(t *testing.T) {
		games, err := s.ListVideoGames(ctx, store.VideoGameFilter{GenreIDs: []int{rpg, action}})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 2 {
			t.Fatalf("Expected 2 games with both RPG and Action, got %d", len(games))
		}
		if games[0].ID != sprawl || games[1].ID != raiders {
			t.Errorf("Expected ids [%d %d], got %v", sprawl, raiders, games)
		}

		games, err = s.ListVideoGames(ctx, store.VideoGameFilter{GenreIDs: []int{rpg, action, indie}})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 1 || games[0].ID != sprawl {
			t.Errorf("Expected only Starfield Sprawl for all three genres, got %v", games)
		}

		games, err = s.ListVideoGames(ctx, store.VideoGameFilter{GenreIDs: []int{rpg, action, puzzle}})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 0 {
			t.Errorf("Expected no game in RPG, Action and Puzzle at once, got %v", games)
		}
	})

	t.Run("combined filters narrow the result", func(t *testing.T) {
		games, err := s.ListVideoGames(ctx, store.VideoGameFilter{
			NameContains: ptr("raiders"),
			GenreIDs:     []int{rpg, action},
		})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 1 || games[0].ID != raiders {
			t.Errorf("Expected only Cavern Raiders, got %v", games)
		}
	})
}

func TestIntegration_Pagination(t *testing.T) {
	s, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	names := []string{
		"Astral Drift", "Bramble Keep", "Cinder Peak", "Dune Courier", "Ember Vale",
		"Frost Harbor", "Gale Riders", "Hollow Crown", "Iron Meadow", "Jade Signal",
		"Kelp Forest", "Lantern Row", "Mire Walker", "Night Parcel", "Opal Circuit",
	}
	for _, name := range names {
		if _, err := s.CreateVideoGame(ctx, catalog.VideoGame{Name: name}); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	page1, err := s.ListVideoGames(ctx, store.VideoGameFilter{Page: sqlbuilder.Page{Number: 1, Limit: 10}})
	if err != nil {
		t.Fatalf("Failed to list page 1: %v", err)
	}
	page2, err := s.ListVideoGames(ctx, store.VideoGameFilter{Page: sqlbuilder.Page{Number: 2, Limit: 10}})
	if err != nil {
		t.Fatalf("Failed to list page 2: %v", err)
	}

	if len(page1) != 10 {
		t.Errorf("Expected 10 games on page 1, got %d", len(page1))
	}
	if len(page2) != 5 {
		t.Errorf("Expected 5 games on page 2, got %d", len(page2))
	}

	seen := make(map[int]bool)
	for _, vg := range append(page1, page2...) {
		if seen[vg.ID] {
			t.Errorf("Game %d appears on both pages", vg.ID)
		}
		seen[vg.ID] = true
	}

	t.Run("limit above the maximum is capped", func(t *testing.T) {
		games, err := s.ListVideoGames(ctx, store.VideoGameFilter{Page: sqlbuilder.Page{Number: 1, Limit: 500}})
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(games) != 15 {
			t.Errorf("Expected all 15 games within the cap, got %d", len(games))
		}
	})
}

func TestIntegration_CascadingDeletes(t *testing.T) {
	s, pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.CreatePlatform(ctx, catalog.Platform{Code: "PS5", Description: "PlayStation 5"}); err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}
	if err := s.CreatePlatform(ctx, catalog.Platform{Code: "PC", Description: "PC"}); err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}
	rpg, _ := s.CreateGenre(ctx, catalog.Genre{Name: "RPG"})

	doomed, err := s.CreateVideoGame(ctx, catalog.VideoGame{Name: "Doomed Voyage"})
	if err != nil {
		t.Fatalf("Failed to create video game: %v", err)
	}
	keeper, _ := s.CreateVideoGame(ctx, catalog.VideoGame{Name: "Keeper Quest"})

	if err := s.AddCategory(ctx, catalog.Category{GenreID: rpg, VideoGameID: doomed}); err != nil {
		t.Fatalf("Failed to categorize: %v", err)
	}
	_ = s.AddCategory(ctx, catalog.Category{GenreID: rpg, VideoGameID: keeper})

	release := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	pubPS5, err := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "PS5", VideoGameID: doomed, ReleaseDate: release})
	if err != nil {
		t.Fatalf("Failed to create publication: %v", err)
	}
	pubPC, _ := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "PC", VideoGameID: doomed, ReleaseDate: release})
	pubKeeper, _ := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "PC", VideoGameID: keeper, ReleaseDate: release})

	player, err := s.CreateUser(ctx, catalog.User{Username: "ada", Email: "ada@example.com", HashedPassword: "x"})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	for _, pub := range []int{pubPS5, pubPC, pubKeeper} {
		if err := s.CreateGame(ctx, catalog.Game{UserID: player, PublicationID: pub, IsOwned: true}); err != nil {
			t.Fatalf("Failed to create game record: %v", err)
		}
	}

	if err := s.DeleteVideoGame(ctx, doomed); err != nil {
		t.Fatalf("Failed to delete video game: %v", err)
	}

	if _, err := s.GetVideoGame(ctx, doomed); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected deleted game to be gone, got %v", err)
	}
	if got := countRows(t, pool, "publications"); got != 1 {
		t.Errorf("Expected 1 surviving publication, got %d", got)
	}
	if got := countRows(t, pool, "games"); got != 1 {
		t.Errorf("Expected 1 surviving game record, got %d", got)
	}
	if got := countRows(t, pool, "categories"); got != 1 {
		t.Errorf("Expected 1 surviving category, got %d", got)
	}
	if _, err := s.GetPublication(ctx, pubKeeper); err != nil {
		t.Errorf("Expected untouched publication to survive: %v", err)
	}
}

func TestIntegration_ConflictClassification(t *testing.T) {
	s, pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.CreatePlatform(ctx, catalog.Platform{Code: "SWITCH", Description: "Nintendo Switch"}); err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}
	vg, err := s.CreateVideoGame(ctx, catalog.VideoGame{Name: "Echo Garden"})
	if err != nil {
		t.Fatalf("Failed to create video game: %v", err)
	}
	release := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	if _, err := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "SWITCH", VideoGameID: vg, ReleaseDate: release}); err != nil {
		t.Fatalf("Failed to create publication: %v", err)
	}

	t.Run("duplicate publication", func(t *testing.T) {
		_, err := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "SWITCH", VideoGameID: vg, ReleaseDate: release})
		if !errors.Is(err, store.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("publication on a missing platform", func(t *testing.T) {
		_, err := s.CreatePublication(ctx, catalog.Publication{PlatformCode: "N64", VideoGameID: vg, ReleaseDate: release})
		if !errors.Is(err, store.ErrForeignKeyNotFound) {
			t.Errorf("Expected ErrForeignKeyNotFound, got %v", err)
		}
	})

	t.Run("deleting an absent platform", func(t *testing.T) {
		if err := s.DeletePlatform(ctx, "DREAMCAST"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("administrators cannot be deleted", func(t *testing.T) {
		admin, err := s.CreateUser(ctx, catalog.User{Username: "root", Email: "root@example.com", HashedPassword: "x", IsAdmin: true})
		if err != nil {
			t.Fatalf("Failed to create admin: %v", err)
		}

		if err := s.DeleteUser(ctx, admin); !errors.Is(err, store.ErrRuleViolation) {
			t.Errorf("Expected ErrRuleViolation, got %v", err)
		}
		if got := countRows(t, pool, "users"); got != 1 {
			t.Errorf("Expected admin row to remain, got %d users", got)
		}
	})
}

func TestIntegration_PlatformRename(t *testing.T) {
	s, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := s.CreatePlatform(ctx, catalog.Platform{Code: "NX", Description: "Codename NX"}); err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}
	vg, _ := s.CreateVideoGame(ctx, catalog.VideoGame{Name: "Launch Title"})
	pub, err := s.CreatePublication(ctx, catalog.Publication{
		PlatformCode: "NX", VideoGameID: vg,
		ReleaseDate: time.Date(2017, time.March, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to create publication: %v", err)
	}

	if err := s.RenamePlatform(ctx, "NX", "SWITCH"); err != nil {
		t.Fatalf("Failed to rename platform: %v", err)
	}

	got, err := s.GetPublication(ctx, pub)
	if err != nil {
		t.Fatalf("Failed to fetch publication: %v", err)
	}
	if got.PlatformCode != "SWITCH" {
		t.Errorf("Expected publication to follow the rename, got %q", got.PlatformCode)
	}
	if _, err := s.GetPlatform(ctx, "NX"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected old code to be gone, got %v", err)
	}
}
