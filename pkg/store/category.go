package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// AddCategory links a video game to a genre. An existing link classifies as
// ErrDuplicateEntry, a missing genre or video game as ErrForeignKeyNotFound.
func (s *Store) AddCategory(ctx context.Context, c catalog.Category) error {
	sql, args, err := sqlbuilder.NewInsert("categories").
		Set("genre_id", c.GenreID).
		Set("video_game_id", c.VideoGameID).
		ToSQL()
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, s.db, sql, args)
	return err
}

// RemoveCategory unlinks a video game from a genre.
func (s *Store) RemoveCategory(ctx context.Context, c catalog.Category) error {
	sql, args, err := sqlbuilder.NewDelete("categories").
		Where(sqlbuilder.Eq("genre_id", c.GenreID)).
		Where(sqlbuilder.Eq("video_game_id", c.VideoGameID)).
		ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// RekeyCategory replaces one link row with another. Both columns of a
// category are its identity, so a category "update" is a delete-and-insert
// done in one transaction, not a field mutation.
func (s *Store) RekeyCategory(ctx context.Context, from, to catalog.Category) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.execOne(ctx, tx,
			"DELETE FROM categories WHERE genre_id = $1 AND video_game_id = $2",
			[]any{from.GenreID, from.VideoGameID},
		); err != nil {
			return err
		}
		_, err := s.exec(ctx, tx,
			"INSERT INTO categories (genre_id, video_game_id) VALUES ($1, $2)",
			[]any{to.GenreID, to.VideoGameID},
		)
		return err
	})
}

// GenresOfVideoGame returns the genres a video game is categorized under,
// alphabetically.
func (s *Store) GenresOfVideoGame(ctx context.Context, videoGameID int) ([]catalog.Genre, error) {
	sql, args, err := sqlbuilder.NewSelect("genres g", "g.id").
		Columns("g.id", "g.name", "g.description").
		Join("JOIN categories c ON c.genre_id = g.id").
		Where(sqlbuilder.Eq("c.video_game_id", videoGameID)).
		OrderBy("g.name", sqlbuilder.Asc).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(&QueryError{Query: sql, Err: err})
	}
	defer rows.Close()

	var genres []catalog.Genre
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, classify(err)
		}
		genres = append(genres, g)
	}
	return genres, classify(rows.Err())
}
