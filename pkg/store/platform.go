package store

import (
	"context"
	"strings"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// PlatformFilter holds the optional criteria of a platform listing.
type PlatformFilter struct {
	Contains *string // substring of the description, case-insensitive
	Page     sqlbuilder.Page
}

// normalizeCode canonicalizes a platform code. Codes are stored upper-case.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ListPlatforms returns platforms matching the filter. Absent criteria match
// all rows.
func (s *Store) ListPlatforms(ctx context.Context, f PlatformFilter) ([]catalog.Platform, error) {
	q := sqlbuilder.NewSelect("platforms", "code").
		Columns("code", "description", "abbreviation").
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))
	if f.Contains != nil {
		q.Where(sqlbuilder.Contains("description", *f.Contains))
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

	var platforms []catalog.Platform
	for rows.Next() {
		var p catalog.Platform
		if err := rows.Scan(&p.Code, &p.Description, &p.Abbreviation); err != nil {
			return nil, classify(err)
		}
		platforms = append(platforms, p)
	}
	return platforms, classify(rows.Err())
}

// GetPlatform returns the platform with the given code.
func (s *Store) GetPlatform(ctx context.Context, code string) (catalog.Platform, error) {
	var p catalog.Platform
	err := s.db.QueryRow(ctx,
		"SELECT code, description, abbreviation FROM platforms WHERE code = $1",
		normalizeCode(code),
	).Scan(&p.Code, &p.Description, &p.Abbreviation)
	if err != nil {
		return catalog.Platform{}, classify(err)
	}
	return p, nil
}

// CreatePlatform inserts a platform. The code is case-normalized before
// insertion; an existing code classifies as ErrDuplicateEntry.
func (s *Store) CreatePlatform(ctx context.Context, p catalog.Platform) error {
	sql, args, err := sqlbuilder.NewInsert("platforms").
		Set("code", normalizeCode(p.Code)).
		Set("description", p.Description).
		Set("abbreviation", p.Abbreviation).
		ToSQL()
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, s.db, sql, args)
	return err
}

// PlatformUpdate is the sparse field set of a platform update. Nil fields are
// not touched. The code is the platform's identity and is not part of this
// set; see RenamePlatform.
type PlatformUpdate struct {
	Description  *string
	Abbreviation *string
}

// UpdatePlatform applies the present fields to the platform with the given
// code. An empty field set fails with ErrNoFieldsToUpdate before any
// statement executes.
func (s *Store) UpdatePlatform(ctx context.Context, code string, u PlatformUpdate) error {
	q := sqlbuilder.NewUpdate("platforms").
		Key(sqlbuilder.Eq("code", normalizeCode(code)))
	if u.Description != nil {
		q.Set("description", *u.Description)
	}
	if u.Abbreviation != nil {
		q.Set("abbreviation", *u.Abbreviation)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// RenamePlatform changes a platform's code. Identity changes are modeled as
// their own operation, never as a field of the generic update. Publications
// follow the rename through the schema's ON UPDATE CASCADE.
func (s *Store) RenamePlatform(ctx context.Context, code, newCode string) error {
	return s.execOne(ctx, s.db,
		"UPDATE platforms SET code = $1 WHERE code = $2",
		[]any{normalizeCode(newCode), normalizeCode(code)},
	)
}

// DeletePlatform removes a platform together with its publications and their
// game records, all-or-nothing.
func (s *Store) DeletePlatform(ctx context.Context, code string) error {
	return s.cascadeDelete(ctx, KindPlatform, normalizeCode(code))
}
