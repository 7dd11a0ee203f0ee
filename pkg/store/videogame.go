package store

import (
	"context"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// VideoGameFilter holds the optional criteria of a video game listing.
// GenreIDs is an intersection filter: a game must be categorized under every
// listed genre, not merely one. An empty list means no genre filter.
type VideoGameFilter struct {
	NameContains *string
	GenreIDs     []int
	Alphabetical bool
	Page         sqlbuilder.Page
}

// ListVideoGames returns video games matching the filter.
func (s *Store) ListVideoGames(ctx context.Context, f VideoGameFilter) ([]catalog.VideoGame, error) {
	q := sqlbuilder.NewSelect("video_games", "id").
		Columns("id", "name", "description").
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))
	if f.NameContains != nil {
		q.Where(sqlbuilder.Contains("name", *f.NameContains))
	}
	if len(f.GenreIDs) > 0 {
		q.Where(sqlbuilder.MatchesAllTags("id", "categories", "video_game_id", "genre_id", f.GenreIDs))
	}
	if f.Alphabetical {
		q.OrderBy("name", sqlbuilder.Asc)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(&QueryError{Query: sql, Err: err})
	}
	defer rows.Close()

	var games []catalog.VideoGame
	for rows.Next() {
		var vg catalog.VideoGame
		if err := rows.Scan(&vg.ID, &vg.Name, &vg.Description); err != nil {
			return nil, classify(err)
		}
		games = append(games, vg)
	}
	return games, classify(rows.Err())
}

// GetVideoGame returns the video game with the given id.
func (s *Store) GetVideoGame(ctx context.Context, id int) (catalog.VideoGame, error) {
	var vg catalog.VideoGame
	err := s.db.QueryRow(ctx,
		"SELECT id, name, description FROM video_games WHERE id = $1", id,
	).Scan(&vg.ID, &vg.Name, &vg.Description)
	if err != nil {
		return catalog.VideoGame{}, classify(err)
	}
	return vg, nil
}

// CreateVideoGame inserts a video game and returns the generated id.
func (s *Store) CreateVideoGame(ctx context.Context, vg catalog.VideoGame) (int, error) {
	sql, args, err := sqlbuilder.NewInsert("video_games").
		Set("name", vg.Name).
		Set("description", vg.Description).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, err
	}

	var id int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, classify(&QueryError{Query: sql, Err: err})
	}
	return id, nil
}

// VideoGameUpdate is the sparse field set of a video game update.
type VideoGameUpdate struct {
	Name        *string
	Description *string
}

// UpdateVideoGame applies the present fields to the video game with the
// given id.
func (s *Store) UpdateVideoGame(ctx context.Context, id int, u VideoGameUpdate) error {
	q := sqlbuilder.NewUpdate("video_games").
		Key(sqlbuilder.Eq("id", id))
	if u.Name != nil {
		q.Set("name", *u.Name)
	}
	if u.Description != nil {
		q.Set("description", *u.Description)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// DeleteVideoGame removes a video game together with its publications, their
// game records, and its category rows, all-or-nothing. Each publication's
// cascade completes before the next begins.
func (s *Store) DeleteVideoGame(ctx context.Context, id int) error {
	return s.cascadeDelete(ctx, KindVideoGame, id)
}
