package sqlbuilder

import (
	"fmt"
	"strings"
)

// WhereBuilder compiles a set of optional conditions into a conjunctive WHERE
// clause with positional parameters. Each clause is paired with its bound
// value at append time, and placeholder numbers are assigned internally, so a
// clause can never drift apart from the value it binds.
type WhereBuilder struct {
	conditions []Condition
	paramStart int
}

// NewWhereBuilder creates a new WhereBuilder numbering parameters from $1.
func NewWhereBuilder() *WhereBuilder {
	return NewWhereBuilderWithStart(1)
}

// NewWhereBuilderWithStart creates a new WhereBuilder with a starting
// parameter number, for statements that bind parameters before the WHERE
// clause (UPDATE ... SET).
func NewWhereBuilderWithStart(paramStart int) *WhereBuilder {
	return &WhereBuilder{
		conditions: make([]Condition, 0),
		paramStart: paramStart,
	}
}

// Add adds a condition to the WHERE clause.
func (w *WhereBuilder) Add(condition Condition) {
	w.conditions = append(w.conditions, condition)
}

// AddIf adds a condition only when present is true. Absent filter fields
// contribute no clause.
func (w *WhereBuilder) AddIf(present bool, condition Condition) {
	if present {
		w.Add(condition)
	}
}

// Len reports the number of conditions added so far.
func (w *WhereBuilder) Len() int {
	return len(w.conditions)
}

// Build generates the WHERE clause SQL and arguments. An empty builder
// compiles to the empty string and no arguments: no restriction, never an
// invalid clause.
func (w *WhereBuilder) Build() (string, []interface{}, error) {
	if len(w.conditions) == 0 {
		return "", nil, nil
	}

	var parts []string
	var args []interface{}
	paramNum := w.paramStart

	for i, cond := range w.conditions {
		condSQL, condArgs, err := buildCondition(cond, paramNum)
		if err != nil {
			return "", nil, err
		}

		parts = append(parts, condSQL)
		args = append(args, condArgs...)
		paramNum += len(condArgs)

		if i < len(w.conditions)-1 {
			logic := w.conditions[i+1].Logic
			if logic == "" {
				logic = LogicAnd
			}
			parts[len(parts)-1] += " " + string(logic)
		}
	}

	return "WHERE " + strings.Join(parts, " "), args, nil
}

// buildCondition builds a single condition with placeholders numbered from
// paramNum.
func buildCondition(cond Condition, paramNum int) (string, []interface{}, error) {
	if cond.SubSQL != "" {
		return buildSubquery(cond, paramNum)
	}

	switch cond.Operator {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpILike:
		return fmt.Sprintf("%s %s $%d", cond.Column, cond.Operator, paramNum), []interface{}{cond.Value}, nil

	case OpIn:
		values, ok := cond.Value.([]interface{})
		if !ok {
			return "", nil, fmt.Errorf("IN operator requires []interface{} value, got %T", cond.Value)
		}
		if len(values) == 0 {
			return "", nil, fmt.Errorf("IN operator requires at least one value")
		}

		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = fmt.Sprintf("$%d", paramNum+i)
		}
		return fmt.Sprintf("%s IN (%s)", cond.Column, strings.Join(placeholders, ", ")), values, nil

	case OpIsNull:
		return fmt.Sprintf("%s IS NULL", cond.Column), nil, nil

	case OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", cond.Column), nil, nil

	default:
		return "", nil, fmt.Errorf("unknown operator: %s", cond.Operator)
	}
}

// buildSubquery numbers the `$%d` verbs in a subquery template and binds its
// arguments in template order.
func buildSubquery(cond Condition, paramNum int) (string, []interface{}, error) {
	verbs := strings.Count(cond.SubSQL, "$%d")
	if verbs != len(cond.Args) {
		return "", nil, fmt.Errorf("subquery binds %d placeholders but %d args supplied", verbs, len(cond.Args))
	}

	nums := make([]interface{}, len(cond.Args))
	for i := range cond.Args {
		nums[i] = paramNum + i
	}
	sub := fmt.Sprintf(cond.SubSQL, nums...)

	return fmt.Sprintf("%s %s (%s)", cond.Column, cond.Operator, sub), cond.Args, nil
}
