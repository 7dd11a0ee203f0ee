package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx is a scripted pgx.Tx. Exec calls are recorded in order; enumerate
// scripts Query results for cascade enumeration; rowResults scripts QueryRow
// scans; failAt injects a failure on the nth Exec (1-based).
type fakeTx struct {
	execCalls    []execCall
	enumerate    map[string][]int
	rowResults   map[string]any
	affectedZero map[string]bool
	failAt       int
	committed    bool
	rolledBack   bool
}

type execCall struct {
	sql  string
	args []any
}

var errInjected = errors.New("injected failure")

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execCalls = append(t.execCalls, execCall{sql: sql, args: args})
	if t.failAt == len(t.execCalls) {
		return pgconn.CommandTag{}, errInjected
	}
	if t.affectedZero[sql] {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (t *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	keys := t.enumerate[sql]
	rows := make([][]any, len(keys))
	for i, k := range keys {
		rows[i] = []any{k}
	}
	return &fakeRows{rows: rows}, nil
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	val, ok := t.rowResults[sql]
	if !ok {
		return &fakeRow{err: pgx.ErrNoRows}
	}
	return &fakeRow{vals: []any{val}}
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakeConn satisfies Conn, delegating every statement to the scripted
// transaction so direct and transactional paths record into the same place.
type fakeConn struct {
	tx *fakeTx
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) { return c.tx, nil }

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.tx.Exec(ctx, sql, args...)
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.tx.Query(ctx, sql, args...)
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.tx.QueryRow(ctx, sql, args...)
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.rows[r.idx-1], dest)
}

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.vals, dest)
}

func assign(vals []any, dest []any) error {
	for i, d := range dest {
		if i >= len(vals) {
			break
		}
		switch p := d.(type) {
		case *int:
			*p = vals[i].(int)
		case *bool:
			*p = vals[i].(bool)
		case *string:
			*p = vals[i].(string)
		default:
			return errors.New("fake scan: unsupported destination type")
		}
	}
	return nil
}

func newTestStore(tx *fakeTx) *Store {
	return &Store{
		db:  &fakeConn{tx: tx},
		log: slog.New(slog.DiscardHandler),
	}
}
