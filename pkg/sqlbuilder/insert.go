package sqlbuilder

import (
	"fmt"
	"strings"
)

// InsertBuilder composes an INSERT statement from ordered column/value pairs.
// All values are bound positionally.
type InsertBuilder struct {
	table     string
	columns   []string
	values    []interface{}
	returning []string
}

// NewInsert creates an InsertBuilder for a table.
func NewInsert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Set appends a column and its value. Call order determines column order.
func (q *InsertBuilder) Set(column string, value interface{}) *InsertBuilder {
	q.columns = append(q.columns, column)
	q.values = append(q.values, value)
	return q
}

// Returning specifies columns to return after insert, typically the generated
// key.
func (q *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	q.returning = columns
	return q
}

// ToSQL generates the INSERT SQL and arguments.
func (q *InsertBuilder) ToSQL() (string, []interface{}, error) {
	if len(q.columns) == 0 {
		return "", nil, fmt.Errorf("no values to insert")
	}

	var sql strings.Builder

	sql.WriteString("INSERT INTO ")
	sql.WriteString(q.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(q.columns, ", "))
	sql.WriteString(") VALUES (")

	placeholders := make([]string, len(q.values))
	for i := range q.values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql.WriteString(strings.Join(placeholders, ", "))
	sql.WriteString(")")

	if len(q.returning) > 0 {
		sql.WriteString(" RETURNING ")
		sql.WriteString(strings.Join(q.returning, ", "))
	}

	return sql.String(), q.values, nil
}
