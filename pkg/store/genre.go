package store

import (
	"context"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// GenreFilter holds the optional criteria of a genre listing.
type GenreFilter struct {
	NameContains *string
	Page         sqlbuilder.Page
}

// ListGenres returns genres matching the filter, alphabetically.
func (s *Store) ListGenres(ctx context.Context, f GenreFilter) ([]catalog.Genre, error) {
	q := sqlbuilder.NewSelect("genres", "id").
		Columns("id", "name", "description").
		OrderBy("name", sqlbuilder.Asc).
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))
	if f.NameContains != nil {
		q.Where(sqlbuilder.Contains("name", *f.NameContains))
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

// GetGenre returns the genre with the given id.
func (s *Store) GetGenre(ctx context.Context, id int) (catalog.Genre, error) {
	var g catalog.Genre
	err := s.db.QueryRow(ctx,
		"SELECT id, name, description FROM genres WHERE id = $1", id,
	).Scan(&g.ID, &g.Name, &g.Description)
	if err != nil {
		return catalog.Genre{}, classify(err)
	}
	return g, nil
}

// CreateGenre inserts a genre and returns the generated id. A duplicate name
// classifies as ErrDuplicateEntry.
func (s *Store) CreateGenre(ctx context.Context, g catalog.Genre) (int, error) {
	sql, args, err := sqlbuilder.NewInsert("genres").
		Set("name", g.Name).
		Set("description", g.Description).
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

// GenreUpdate is the sparse field set of a genre update.
type GenreUpdate struct {
	Name        *string
	Description *string
}

// UpdateGenre applies the present fields to the genre with the given id.
func (s *Store) UpdateGenre(ctx context.Context, id int, u GenreUpdate) error {
	q := sqlbuilder.NewUpdate("genres").
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

// DeleteGenre removes a genre together with its category rows,
// all-or-nothing.
func (s *Store) DeleteGenre(ctx context.Context, id int) error {
	return s.cascadeDelete(ctx, KindGenre, id)
}
