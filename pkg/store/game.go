package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// GameFilter holds the optional criteria of a game-record listing.
type GameFilter struct {
	UserID        *int
	PublicationID *int
	IsOwned       *bool
	MinRating     *int
	Page          sqlbuilder.Page
}

// ListGames returns game records matching the filter.
func (s *Store) ListGames(ctx context.Context, f GameFilter) ([]catalog.Game, error) {
	q := sqlbuilder.NewSelect("games", "user_id, publication_id").
		Columns("user_id", "publication_id", "is_owned", "review_rating", "review_comment", "review_date").
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))
	if f.UserID != nil {
		q.Where(sqlbuilder.Eq("user_id", *f.UserID))
	}
	if f.PublicationID != nil {
		q.Where(sqlbuilder.Eq("publication_id", *f.PublicationID))
	}
	if f.IsOwned != nil {
		q.Where(sqlbuilder.Eq("is_owned", *f.IsOwned))
	}
	if f.MinRating != nil {
		q.Where(sqlbuilder.Gte("review_rating", *f.MinRating))
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

	var games []catalog.Game
	for rows.Next() {
		var g catalog.Game
		if err := rows.Scan(&g.UserID, &g.PublicationID, &g.IsOwned, &g.ReviewRating, &g.ReviewComment, &g.ReviewDate); err != nil {
			return nil, classify(err)
		}
		games = append(games, g)
	}
	return games, classify(rows.Err())
}

// GetGame returns a user's record for a publication.
func (s *Store) GetGame(ctx context.Context, userID, publicationID int) (catalog.Game, error) {
	var g catalog.Game
	err := s.db.QueryRow(ctx,
		"SELECT user_id, publication_id, is_owned, review_rating, review_comment, review_date FROM games WHERE user_id = $1 AND publication_id = $2",
		userID, publicationID,
	).Scan(&g.UserID, &g.PublicationID, &g.IsOwned, &g.ReviewRating, &g.ReviewComment, &g.ReviewDate)
	if err != nil {
		return catalog.Game{}, classify(err)
	}
	return g, nil
}

// CreateGame inserts a user's record for a publication. Review rules (rating
// range, review date not in the future) are checked before the datastore is
// touched and classify as ErrRuleViolation.
func (s *Store) CreateGame(ctx context.Context, g catalog.Game) error {
	if err := g.Validate(time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrRuleViolation, err)
	}

	sql, args, err := sqlbuilder.NewInsert("games").
		Set("user_id", g.UserID).
		Set("publication_id", g.PublicationID).
		Set("is_owned", g.IsOwned).
		Set("review_rating", g.ReviewRating).
		Set("review_comment", g.ReviewComment).
		Set("review_date", g.ReviewDate).
		ToSQL()
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, s.db, sql, args)
	return err
}

// GameUpdate is the sparse field set of a game-record update.
type GameUpdate struct {
	IsOwned       *bool
	ReviewRating  *int
	ReviewComment *string
	ReviewDate    *time.Time
}

// UpdateGame applies the present fields to a user's record for a
// publication. The composite key is supplied separately and is never part of
// the field set.
func (s *Store) UpdateGame(ctx context.Context, userID, publicationID int, u GameUpdate) error {
	check := catalog.Game{ReviewRating: u.ReviewRating, ReviewDate: u.ReviewDate}
	if err := check.Validate(time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrRuleViolation, err)
	}

	q := sqlbuilder.NewUpdate("games").
		Key(sqlbuilder.Eq("user_id", userID)).
		Key(sqlbuilder.Eq("publication_id", publicationID))
	if u.IsOwned != nil {
		q.Set("is_owned", *u.IsOwned)
	}
	if u.ReviewRating != nil {
		q.Set("review_rating", *u.ReviewRating)
	}
	if u.ReviewComment != nil {
		q.Set("review_comment", *u.ReviewComment)
	}
	if u.ReviewDate != nil {
		q.Set("review_date", *u.ReviewDate)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// DeleteGame removes a user's record for a publication. Game rows have no
// dependents, so this is a direct single-statement delete.
func (s *Store) DeleteGame(ctx context.Context, userID, publicationID int) error {
	sql, args, err := sqlbuilder.NewDelete("games").
		Where(sqlbuilder.Eq("user_id", userID)).
		Where(sqlbuilder.Eq("publication_id", publicationID)).
		ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}
