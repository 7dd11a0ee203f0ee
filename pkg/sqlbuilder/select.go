package sqlbuilder

import (
	"fmt"
	"strings"
)

// OrderBy represents an ORDER BY clause.
type OrderBy struct {
	Column    string
	Direction OrderDirection
}

// SelectBuilder composes a SELECT statement from optional filter conditions.
// Every builder carries a stable default sort key so paging stays
// deterministic across calls even when no explicit sort is requested.
type SelectBuilder struct {
	table        string
	columns      []string
	joins        []string
	where        []Condition
	orderBy      []OrderBy
	defaultOrder string
	page         *Page
}

// NewSelect creates a SelectBuilder for a table. defaultOrder is the stable
// key (usually the primary key) used when no explicit ORDER BY is added.
func NewSelect(table string, defaultOrder string) *SelectBuilder {
	return &SelectBuilder{
		table:        table,
		columns:      []string{"*"},
		defaultOrder: defaultOrder,
	}
}

// Columns specifies which columns to select.
func (q *SelectBuilder) Columns(cols ...string) *SelectBuilder {
	q.columns = cols
	return q
}

// Join appends a raw join fragment, e.g.
// "JOIN video_games vg ON vg.id = p.video_game_id".
func (q *SelectBuilder) Join(fragment string) *SelectBuilder {
	q.joins = append(q.joins, fragment)
	return q
}

// Where adds a condition.
func (q *SelectBuilder) Where(condition Condition) *SelectBuilder {
	q.where = append(q.where, condition)
	return q
}

// WhereIf adds a condition only when present is true.
func (q *SelectBuilder) WhereIf(present bool, condition Condition) *SelectBuilder {
	if present {
		q.where = append(q.where, condition)
	}
	return q
}

// OrderBy adds an explicit ORDER BY clause, overriding the default key. The
// default key is still appended last as a tie-breaker.
func (q *SelectBuilder) OrderBy(column string, direction OrderDirection) *SelectBuilder {
	q.orderBy = append(q.orderBy, OrderBy{Column: column, Direction: direction})
	return q
}

// Paginate bounds the result window.
func (q *SelectBuilder) Paginate(page Page) *SelectBuilder {
	q.page = &page
	return q
}

// ToSQL generates the SELECT SQL and arguments.
func (q *SelectBuilder) ToSQL() (string, []interface{}, error) {
	var sql strings.Builder
	var args []interface{}

	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(q.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(q.table)

	for _, join := range q.joins {
		sql.WriteString(" ")
		sql.WriteString(join)
	}

	if len(q.where) > 0 {
		wb := NewWhereBuilder()
		for _, cond := range q.where {
			wb.Add(cond)
		}
		whereSQL, whereArgs, err := wb.Build()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	sql.WriteString(" ORDER BY ")
	if len(q.orderBy) > 0 {
		orderParts := make([]string, 0, len(q.orderBy)+1)
		for _, order := range q.orderBy {
			orderParts = append(orderParts, order.Column+" "+string(order.Direction))
		}
		if q.defaultOrder != "" {
			orderParts = append(orderParts, q.defaultOrder+" "+string(Asc))
		}
		sql.WriteString(strings.Join(orderParts, ", "))
	} else {
		sql.WriteString(q.defaultOrder + " " + string(Asc))
	}

	if q.page != nil {
		sql.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", q.page.Limit, q.page.Offset()))
	}

	return sql.String(), args, nil
}
