// Package sqlbuilder composes parameterized SQL statements from sparse,
// optional filter and mutation fields. Every caller-supplied value travels
// through the positional argument list; statement text never embeds values.
package sqlbuilder

import (
	"fmt"
	"strings"
)

// Operator represents a comparison operator.
type Operator string

const (
	// OpEqual represents the = operator.
	OpEqual Operator = "="
	// OpNotEqual represents the != operator.
	OpNotEqual Operator = "!="
	// OpGreaterThan represents the > operator.
	OpGreaterThan Operator = ">"
	// OpGreaterThanOrEqual represents the >= operator.
	OpGreaterThanOrEqual Operator = ">="
	// OpLessThan represents the < operator.
	OpLessThan Operator = "<"
	// OpLessThanOrEqual represents the <= operator.
	OpLessThanOrEqual Operator = "<="
	// OpIn represents the IN operator.
	OpIn Operator = "IN"
	// OpILike represents the ILIKE operator (case-insensitive match).
	OpILike Operator = "ILIKE"
	// OpIsNull represents the IS NULL operator.
	OpIsNull Operator = "IS NULL"
	// OpIsNotNull represents the IS NOT NULL operator.
	OpIsNotNull Operator = "IS NOT NULL"
)

// LogicOperator represents a logical operator between conditions.
type LogicOperator string

const (
	// LogicAnd represents the AND operator.
	LogicAnd LogicOperator = "AND"
	// LogicOr represents the OR operator.
	LogicOr LogicOperator = "OR"
)

// OrderDirection represents the sort direction.
type OrderDirection string

const (
	// Asc represents ascending order.
	Asc OrderDirection = "ASC"
	// Desc represents descending order.
	Desc OrderDirection = "DESC"
)

// Condition represents a single WHERE condition. A condition either compares
// a column against a bound value, or wraps a parameterized subquery.
type Condition struct {
	Column   string
	Operator Operator
	Value    interface{}
	Logic    LogicOperator

	// SubSQL, when non-empty, is a subquery template whose `$%d` verbs are
	// numbered by the WhereBuilder. Args are bound in template order.
	SubSQL string
	Args   []interface{}
}

// Eq creates an equality condition.
func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value, Logic: LogicAnd}
}

// NotEq creates a not-equal condition.
func NotEq(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpNotEqual, Value: value, Logic: LogicAnd}
}

// Gt creates a greater-than condition.
func Gt(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpGreaterThan, Value: value, Logic: LogicAnd}
}

// Gte creates a greater-than-or-equal condition.
func Gte(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpGreaterThanOrEqual, Value: value, Logic: LogicAnd}
}

// Lt creates a less-than condition.
func Lt(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpLessThan, Value: value, Logic: LogicAnd}
}

// Lte creates a less-than-or-equal condition.
func Lte(column string, value interface{}) Condition {
	return Condition{Column: column, Operator: OpLessThanOrEqual, Value: value, Logic: LogicAnd}
}

// In creates an IN condition over an explicit value list.
func In(column string, values ...interface{}) Condition {
	return Condition{Column: column, Operator: OpIn, Value: values, Logic: LogicAnd}
}

// Contains creates a case-insensitive substring match. The needle is bound as
// a %-wrapped ILIKE parameter; LIKE metacharacters in the needle are escaped
// so a caller-supplied "%" matches a literal percent sign.
func Contains(column string, needle string) Condition {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(needle)
	return Condition{Column: column, Operator: OpILike, Value: "%" + escaped + "%", Logic: LogicAnd}
}

// IsNull creates an IS NULL condition.
func IsNull(column string) Condition {
	return Condition{Column: column, Operator: OpIsNull, Logic: LogicAnd}
}

// IsNotNull creates an IS NOT NULL condition.
func IsNotNull(column string) Condition {
	return Condition{Column: column, Operator: OpIsNotNull, Logic: LogicAnd}
}

// Or sets the logic operator to OR for the given condition.
func Or(cond Condition) Condition {
	cond.Logic = LogicOr
	return cond
}

// InSubquery creates a "column IN (subquery)" condition. The subquery template
// uses `$%d` where a placeholder belongs; one arg is bound per verb, in order.
//
//	InSubquery("id", "SELECT publication_id FROM games WHERE user_id = $%d", userID)
func InSubquery(column string, subSQL string, args ...interface{}) Condition {
	return Condition{Column: column, Operator: OpIn, SubSQL: subSQL, Args: args, Logic: LogicAnd}
}

// MatchesAllTags creates an intersection condition: column must identify an
// entity whose link rows cover every tag in ids. The link table is grouped by
// the entity column and only groups covering the full id set survive. This is
// intersection, not union: an entity linked to a strict subset of ids does not
// match.
//
// An empty id list must be treated as "no filter" by the caller; this
// function panics on it rather than emit a predicate that matches nothing.
func MatchesAllTags(column, linkTable, entityColumn, tagColumn string, ids []int) Condition {
	if len(ids) == 0 {
		panic("sqlbuilder: MatchesAllTags requires at least one tag id")
	}
	sub := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ANY($%%d) GROUP BY %s HAVING COUNT(DISTINCT %s) = $%%d",
		entityColumn, linkTable, tagColumn, entityColumn, tagColumn,
	)
	return Condition{
		Column:   column,
		Operator: OpIn,
		SubSQL:   sub,
		Args:     []interface{}{ids, len(ids)},
		Logic:    LogicAnd,
	}
}
