package store

import (
	"context"
	"time"

	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// recentWindowDays bounds the RecentOnly filter: a publication is recent if
// it was released within the last 90 days.
const recentWindowDays = 90

// PublicationFilter holds the optional criteria of a publication search.
// GenreIDs is an intersection filter over the published video game's
// categories. OwnerUserID restricts to publications the given user has a
// game record for.
type PublicationFilter struct {
	PlatformCode *string
	VideoGameID  *int
	NameContains *string // substring of the video game's name
	OwnerUserID  *int
	GenreIDs     []int
	RecentOnly   bool
	Alphabetical bool
	Page         sqlbuilder.Page
}

// ListPublications returns publications matching the filter. Sorted
// alphabetically by game name when Alphabetical is set, newest release first
// when RecentOnly is set, and by id otherwise; the id is always the final
// tie-breaker so paging stays deterministic.
func (s *Store) ListPublications(ctx context.Context, f PublicationFilter) ([]catalog.Publication, error) {
	q := sqlbuilder.NewSelect("publications p", "p.id").
		Columns("p.id", "p.platform_code", "p.video_game_id", "p.release_date", "p.release_price", "p.store_page_url").
		Join("JOIN video_games vg ON vg.id = p.video_game_id").
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))

	if f.PlatformCode != nil {
		q.Where(sqlbuilder.Eq("p.platform_code", normalizeCode(*f.PlatformCode)))
	}
	if f.VideoGameID != nil {
		q.Where(sqlbuilder.Eq("p.video_game_id", *f.VideoGameID))
	}
	if f.NameContains != nil {
		q.Where(sqlbuilder.Contains("vg.name", *f.NameContains))
	}
	if f.OwnerUserID != nil {
		q.Where(sqlbuilder.InSubquery("p.id",
			"SELECT publication_id FROM games WHERE user_id = $%d", *f.OwnerUserID))
	}
	if len(f.GenreIDs) > 0 {
		q.Where(sqlbuilder.MatchesAllTags("p.video_game_id", "categories", "video_game_id", "genre_id", f.GenreIDs))
	}
	if f.RecentOnly {
		cutoff := time.Now().AddDate(0, 0, -recentWindowDays)
		q.Where(sqlbuilder.Gte("p.release_date", cutoff))
	}

	switch {
	case f.Alphabetical:
		q.OrderBy("vg.name", sqlbuilder.Asc)
	case f.RecentOnly:
		q.OrderBy("p.release_date", sqlbuilder.Desc)
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

	var pubs []catalog.Publication
	for rows.Next() {
		var p catalog.Publication
		if err := rows.Scan(&p.ID, &p.PlatformCode, &p.VideoGameID, &p.ReleaseDate, &p.ReleasePrice, &p.StorePageURL); err != nil {
			return nil, classify(err)
		}
		pubs = append(pubs, p)
	}
	return pubs, classify(rows.Err())
}

// GetPublication returns the publication with the given id.
func (s *Store) GetPublication(ctx context.Context, id int) (catalog.Publication, error) {
	var p catalog.Publication
	err := s.db.QueryRow(ctx,
		"SELECT id, platform_code, video_game_id, release_date, release_price, store_page_url FROM publications WHERE id = $1",
		id,
	).Scan(&p.ID, &p.PlatformCode, &p.VideoGameID, &p.ReleaseDate, &p.ReleasePrice, &p.StorePageURL)
	if err != nil {
		return catalog.Publication{}, classify(err)
	}
	return p, nil
}

// CreatePublication inserts a publication and returns the generated id. An
// existing (platform, video game) pairing classifies as ErrDuplicateEntry,
// a missing platform or video game as ErrForeignKeyNotFound.
func (s *Store) CreatePublication(ctx context.Context, p catalog.Publication) (int, error) {
	sql, args, err := sqlbuilder.NewInsert("publications").
		Set("platform_code", normalizeCode(p.PlatformCode)).
		Set("video_game_id", p.VideoGameID).
		Set("release_date", p.ReleaseDate).
		Set("release_price", p.ReleasePrice).
		Set("store_page_url", p.StorePageURL).
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

// PublicationUpdate is the sparse field set of a publication update. The
// platform and video game references form the publication's unique pairing
// and are not mutable through this path.
type PublicationUpdate struct {
	ReleaseDate  *time.Time
	ReleasePrice *float64
	StorePageURL *string
}

// UpdatePublication applies the present fields to the publication with the
// given id.
func (s *Store) UpdatePublication(ctx context.Context, id int, u PublicationUpdate) error {
	q := sqlbuilder.NewUpdate("publications").
		Key(sqlbuilder.Eq("id", id))
	if u.ReleaseDate != nil {
		q.Set("release_date", *u.ReleaseDate)
	}
	if u.ReleasePrice != nil {
		q.Set("release_price", *u.ReleasePrice)
	}
	if u.StorePageURL != nil {
		q.Set("store_page_url", *u.StorePageURL)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// DeletePublication removes a publication together with its game records,
// all-or-nothing.
func (s *Store) DeletePublication(ctx context.Context, id int) error {
	return s.cascadeDelete(ctx, KindPublication, id)
}
