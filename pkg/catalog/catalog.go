// Package catalog defines the row types of the game catalog: platforms,
// video games, genres, the category link rows tying games to genres,
// publications (a video game released on a platform), per-user game records,
// and users.
package catalog

import (
	"fmt"
	"time"
)

// Platform is a gaming platform, identified by a stable upper-case code.
type Platform struct {
	Code         string
	Description  string
	Abbreviation string
}

// VideoGame is a game title, independent of any platform release.
type VideoGame struct {
	ID          int
	Name        string
	Description string
}

// Genre is a tag a video game can be categorized under. Names are unique.
type Genre struct {
	ID          int
	Name        string
	Description string
}

// Category links a video game to a genre. Pure link row, composite key.
type Category struct {
	GenreID     int
	VideoGameID int
}

// Publication is a video game released on a platform. The
// (platform, video game) pair is unique.
type Publication struct {
	ID           int
	PlatformCode string
	VideoGameID  int
	ReleaseDate  time.Time
	ReleasePrice *float64
	StorePageURL *string
}

// Game is a user's record of a publication: ownership plus an optional
// review. Composite key (user, publication).
type Game struct {
	UserID        int
	PublicationID int
	IsOwned       bool
	ReviewRating  *int
	ReviewComment *string
	ReviewDate    *time.Time
}

// Validate checks the review fields: rating in 0-5, review date not in the
// future. Shape checking of required fields happens upstream; these are the
// rules the row type itself owns.
func (g Game) Validate(now time.Time) error {
	if g.ReviewRating != nil && (*g.ReviewRating < 0 || *g.ReviewRating > 5) {
		return fmt.Errorf("review rating %d out of range 0-5", *g.ReviewRating)
	}
	if g.ReviewDate != nil && g.ReviewDate.After(now) {
		return fmt.Errorf("review date %s is in the future", g.ReviewDate.Format(time.RFC3339))
	}
	return nil
}

// User is an account. Username and email are unique. Admin users cannot be
// removed through the generic deletion path.
type User struct {
	ID             int
	Username       string
	Email          string
	HashedPassword string
	FirstName      *string
	LastName       *string
	IsAdmin        bool
}
