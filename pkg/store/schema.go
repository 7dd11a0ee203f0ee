package store

import (
	"context"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the catalog tables and constraints. Idempotent; every
// statement is IF NOT EXISTS. Referential actions are NO ACTION on delete:
// dependent-row removal is the cascade orchestrator's responsibility, not the
// schema's.
func (s *Store) ApplySchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return classify(err)
	}
	s.log.Info("catalog schema applied")
	return nil
}
