package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/marshallshelly/gameshelf/pkg/catalog"
	"github.com/marshallshelly/gameshelf/pkg/sqlbuilder"
)

// UserFilter holds the optional criteria of a user listing.
type UserFilter struct {
	UsernameContains *string
	IsAdmin          *bool
	Page             sqlbuilder.Page
}

// ListUsers returns users matching the filter.
func (s *Store) ListUsers(ctx context.Context, f UserFilter) ([]catalog.User, error) {
	q := sqlbuilder.NewSelect("users", "id").
		Columns("id", "username", "email", "hashed_password", "firstname", "lastname", "is_admin").
		Paginate(sqlbuilder.NewPage(f.Page.Number, f.Page.Limit))
	if f.UsernameContains != nil {
		q.Where(sqlbuilder.Contains("username", *f.UsernameContains))
	}
	if f.IsAdmin != nil {
		q.Where(sqlbuilder.Eq("is_admin", *f.IsAdmin))
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

	var users []catalog.User
	for rows.Next() {
		var u catalog.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName, &u.IsAdmin); err != nil {
			return nil, classify(err)
		}
		users = append(users, u)
	}
	return users, classify(rows.Err())
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id int) (catalog.User, error) {
	return s.getUser(ctx, sqlbuilder.Eq("id", id))
}

// GetUserByUsername returns the user with the given username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (catalog.User, error) {
	return s.getUser(ctx, sqlbuilder.Eq("username", username))
}

func (s *Store) getUser(ctx context.Context, key sqlbuilder.Condition) (catalog.User, error) {
	sql, args, err := sqlbuilder.NewSelect("users", "id").
		Columns("id", "username", "email", "hashed_password", "firstname", "lastname", "is_admin").
		Where(key).
		ToSQL()
	if err != nil {
		return catalog.User{}, err
	}

	var u catalog.User
	if err := s.db.QueryRow(ctx, sql, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName, &u.IsAdmin,
	); err != nil {
		return catalog.User{}, classify(err)
	}
	return u, nil
}

// CreateUser inserts a user and returns the generated id. The password is
// expected to be hashed already; hashing belongs to the authentication
// collaborator. A taken username or email classifies as ErrDuplicateEntry.
func (s *Store) CreateUser(ctx context.Context, u catalog.User) (int, error) {
	sql, args, err := sqlbuilder.NewInsert("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("hashed_password", u.HashedPassword).
		Set("firstname", u.FirstName).
		Set("lastname", u.LastName).
		Set("is_admin", u.IsAdmin).
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

// UserUpdate is the sparse field set of a user update.
type UserUpdate struct {
	Email          *string
	HashedPassword *string
	FirstName      *string
	LastName       *string
	IsAdmin        *bool
}

// UpdateUser applies the present fields to the user with the given id.
func (s *Store) UpdateUser(ctx context.Context, id int, u UserUpdate) error {
	q := sqlbuilder.NewUpdate("users").
		Key(sqlbuilder.Eq("id", id))
	if u.Email != nil {
		q.Set("email", *u.Email)
	}
	if u.HashedPassword != nil {
		q.Set("hashed_password", *u.HashedPassword)
	}
	if u.FirstName != nil {
		q.Set("firstname", *u.FirstName)
	}
	if u.LastName != nil {
		q.Set("lastname", *u.LastName)
	}
	if u.IsAdmin != nil {
		q.Set("is_admin", *u.IsAdmin)
	}

	sql, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return s.execOne(ctx, s.db, sql, args)
}

// DeleteUser removes a user together with their game records,
// all-or-nothing. Admin users cannot be deleted through this path: the rule
// is checked inside the transaction before any delete is issued, so a
// violation leaves the user and their games untouched.
func (s *Store) DeleteUser(ctx context.Context, id int) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var isAdmin bool
		if err := tx.QueryRow(ctx, "SELECT is_admin FROM users WHERE id = $1", id).Scan(&isAdmin); err != nil {
			return classify(err)
		}
		if isAdmin {
			return fmt.Errorf("%w: admin users cannot be deleted", ErrRuleViolation)
		}
		return s.runCascade(ctx, tx, KindUser, id)
	})
}
