package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is one named-parameter predicate. Field and Table are trusted column
// names and never come from user input.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	var comparator string

	switch f.Operator {
	case FilterOperatorEq:
		comparator = "="
	case FilterOperatorLessEq:
		comparator = "<="
	case FilterOperatorGreaterEq:
		comparator = ">="
	case FilterIsNull:
		return f.column() + " IS NULL", args
	case FilterIsNotNull:
		return f.column() + " IS NOT NULL", args
	default:
		return "", args
	}

	args[argName] = f.Value

	return fmt.Sprintf("%s %s :%s", f.column(), comparator, argName), args
}

// FilterGroup joins Filters and nested FilterGroups with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+f.Operator+" ")), args
}
