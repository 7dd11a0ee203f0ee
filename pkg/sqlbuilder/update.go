package sqlbuilder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields is returned when an update is built with an empty field set.
// Callers must treat this as a client error; no statement is ever produced.
var ErrNoFields = errors.New("no fields to update")

// UpdateBuilder composes a partial UPDATE statement touching exactly the
// columns that were set. Key columns identifying the target row are supplied
// through Key, never through Set: an entity cannot rename its own identity as
// a side effect of a generic update.
type UpdateBuilder struct {
	table string
	sets  []assignment
	keys  []Condition
}

type assignment struct {
	column string
	value  interface{}
}

// NewUpdate creates an UpdateBuilder for a table.
func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set marks a column as present in the sparse field set.
func (q *UpdateBuilder) Set(column string, value interface{}) *UpdateBuilder {
	q.sets = append(q.sets, assignment{column: column, value: value})
	return q
}

// SetIf marks a column as present only when present is true. Absent fields
// are not touched.
func (q *UpdateBuilder) SetIf(present bool, column string, value interface{}) *UpdateBuilder {
	if present {
		q.Set(column, value)
	}
	return q
}

// Key adds a WHERE condition identifying the target row.
func (q *UpdateBuilder) Key(condition Condition) *UpdateBuilder {
	q.keys = append(q.keys, condition)
	return q
}

// Empty reports whether no fields are present. Callers can fail fast before
// touching the datastore.
func (q *UpdateBuilder) Empty() bool {
	return len(q.sets) == 0
}

// ToSQL generates the UPDATE SQL and arguments. An empty field set fails with
// ErrNoFields rather than emitting a no-op statement.
func (q *UpdateBuilder) ToSQL() (string, []interface{}, error) {
	if len(q.sets) == 0 {
		return "", nil, ErrNoFields
	}

	var sql strings.Builder
	var args []interface{}
	paramNum := 1

	sql.WriteString("UPDATE ")
	sql.WriteString(q.table)
	sql.WriteString(" SET ")

	setClauses := make([]string, 0, len(q.sets))
	for _, set := range q.sets {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", set.column, paramNum))
		args = append(args, set.value)
		paramNum++
	}
	sql.WriteString(strings.Join(setClauses, ", "))

	if len(q.keys) > 0 {
		wb := NewWhereBuilderWithStart(paramNum)
		for _, key := range q.keys {
			wb.Add(key)
		}
		whereSQL, whereArgs, err := wb.Build()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	return sql.String(), args, nil
}
