package sqlbuilder

import (
	"fmt"
	"strings"
)

// DeleteBuilder composes a DELETE statement.
type DeleteBuilder struct {
	table string
	where []Condition
}

// NewDelete creates a DeleteBuilder for a table.
func NewDelete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where adds a condition identifying the rows to delete.
func (q *DeleteBuilder) Where(condition Condition) *DeleteBuilder {
	q.where = append(q.where, condition)
	return q
}

// ToSQL generates the DELETE SQL and arguments. A DELETE with no conditions
// is refused; this layer never removes whole tables.
func (q *DeleteBuilder) ToSQL() (string, []interface{}, error) {
	if len(q.where) == 0 {
		return "", nil, fmt.Errorf("refusing to build DELETE without conditions")
	}

	var sql strings.Builder

	sql.WriteString("DELETE FROM ")
	sql.WriteString(q.table)

	wb := NewWhereBuilder()
	for _, cond := range q.where {
		wb.Add(cond)
	}
	whereSQL, args, err := wb.Build()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	sql.WriteString(" ")
	sql.WriteString(whereSQL)

	return sql.String(), args, nil
}
