package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Kind identifies a parent entity in the cascade graph.
type Kind string

const (
	KindPlatform    Kind = "platform"
	KindVideoGame   Kind = "video_game"
	KindGenre       Kind = "genre"
	KindPublication Kind = "publication"
	KindUser        Kind = "user"
)

// edge is one dependency of a parent entity. Either deleteSQL removes the
// dependent rows directly, or enumerateSQL selects the keys of dependent
// parent rows whose own cascades must run first. Exactly one is set.
type edge struct {
	deleteSQL    string
	enumerateSQL string
	child        Kind
}

// node describes how to remove a parent entity: its dependents in
// leaf-to-root order, then the parent row itself.
type node struct {
	table     string
	keyColumn string
	edges     []edge
}

// cascadeGraph is the fixed dependency graph of the catalog. Declaring
// dependents here, once per entity, is what keeps every deletion path from
// forgetting a step: there is no per-entity hand-written transaction
// sequence to drift out of sync.
var cascadeGraph = map[Kind]node{
	KindPublication: {
		table:     "publications",
		keyColumn: "id",
		edges: []edge{
			{deleteSQL: "DELETE FROM games WHERE publication_id = $1"},
		},
	},
	KindVideoGame: {
		table:     "video_games",
		keyColumn: "id",
		edges: []edge{
			{
				enumerateSQL: "SELECT id FROM publications WHERE video_game_id = $1 ORDER BY id",
				child:        KindPublication,
			},
			{deleteSQL: "DELETE FROM categories WHERE video_game_id = $1"},
		},
	},
	KindPlatform: {
		table:     "platforms",
		keyColumn: "code",
		edges: []edge{
			{
				enumerateSQL: "SELECT id FROM publications WHERE platform_code = $1 ORDER BY id",
				child:        KindPublication,
			},
		},
	},
	KindGenre: {
		table:     "genres",
		keyColumn: "id",
		edges: []edge{
			{deleteSQL: "DELETE FROM categories WHERE genre_id = $1"},
		},
	},
	KindUser: {
		table:     "users",
		keyColumn: "id",
		edges: []edge{
			{deleteSQL: "DELETE FROM games WHERE user_id = $1"},
		},
	},
}

// cascadeDelete removes the parent identified by key together with everything
// that structurally depends on it, inside one transaction. All-or-nothing:
// any failing step rolls back every delete already issued. A parent with zero
// dependents is the normal single-statement case.
func (s *Store) cascadeDelete(ctx context.Context, kind Kind, key any) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		return s.runCascade(ctx, tx, kind, key)
	})
}

// runCascade walks the graph depth-first. Each enumerated dependent's cascade
// completes before the next begins. The parent row is deleted last; zero rows
// affected there means the parent did not exist.
func (s *Store) runCascade(ctx context.Context, q Querier, kind Kind, key any) error {
	n, ok := cascadeGraph[kind]
	if !ok {
		return fmt.Errorf("%w: no cascade graph for kind %q", ErrInternal, kind)
	}

	for _, e := range n.edges {
		if e.enumerateSQL != "" {
			keys, err := s.enumerateKeys(ctx, q, e.enumerateSQL, key)
			if err != nil {
				return err
			}
			for _, childKey := range keys {
				if err := s.runCascade(ctx, q, e.child, childKey); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := s.exec(ctx, q, e.deleteSQL, []any{key}); err != nil {
			return err
		}
	}

	s.log.Debug("cascade: deleting parent", "kind", string(kind), "key", key)
	parentSQL := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", n.table, n.keyColumn)
	return s.execOne(ctx, q, parentSQL, []any{key})
}

// enumerateKeys collects the keys of dependent rows that need their own
// cascade. The child delete below removes each enumerated row, so the result
// is materialized up front rather than streamed.
func (s *Store) enumerateKeys(ctx context.Context, q Querier, sql string, key any) ([]any, error) {
	rows, err := q.Query(ctx, sql, key)
	if err != nil {
		return nil, classify(&QueryError{Query: sql, Err: err})
	}
	defer rows.Close()

	var keys []any
	for rows.Next() {
		var k int
		if err := rows.Scan(&k); err != nil {
			return nil, classify(err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return keys, nil
}
