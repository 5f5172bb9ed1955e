package op

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nickyhof/DirDB/core"
)

var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrInvalidSet       = errors.New("invalid assignment")
)

type Operator int

const (
	Equal Operator = iota
	NotEqual
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

// operators is ordered so two character operators match first
var operators = []struct {
	token    string
	operator Operator
}{
	{"!=", NotEqual},
	{"<>", NotEqual},
	{"<=", LessOrEqual},
	{">=", GreaterOrEqual},
	{"=", Equal},
	{"<", Less},
	{">", Greater},
}

type Condition struct {
	Column   core.Column
	Index    int
	Operator Operator
	Value    string
}

// ParseCondition parses "column <op> value" against the table's columns.
// A blank clause yields a nil condition, which matches every row.
func ParseCondition(text string, table core.Table) (*Condition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	position, token, operator, ok := findOperator(text)
	if !ok {
		return nil, fmt.Errorf("%w: no comparison in %q", ErrInvalidCondition, text)
	}

	name := strings.TrimSpace(text[:position])
	index, ok := table.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	value := core.Unquote(text[position+len(token):])
	column := table.Columns[index]
	if column.Type.Numeric() {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, fmt.Errorf("%w: %q is not a number for column %s", ErrInvalidCondition, value, column.Name)
		}
	}

	return &Condition{
		Column:   column,
		Index:    index,
		Operator: operator,
		Value:    value,
	}, nil
}

func findOperator(text string) (int, string, Operator, bool) {
	inString := false
	for i := 0; i < len(text); i++ {
		if text[i] == '\'' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		for _, candidate := range operators {
			if strings.HasPrefix(text[i:], candidate.token) {
				return i, candidate.token, candidate.operator, true
			}
		}
	}
	return 0, "", Equal, false
}

// Matches reports whether the row satisfies the condition. A nil condition
// matches everything.
func (condition *Condition) Matches(row []string) bool {
	if condition == nil {
		return true
	}
	if condition.Index >= len(row) {
		return false
	}

	var cmp int
	switch {
	case condition.Column.Type.Numeric():
		left, err := strconv.ParseFloat(row[condition.Index], 64)
		if err != nil {
			return false
		}
		right, _ := strconv.ParseFloat(condition.Value, 64)
		switch {
		case left < right:
			cmp = -1
		case left > right:
			cmp = 1
		}
	case condition.Column.Type == core.BoolType:
		left, leftErr := strconv.ParseBool(row[condition.Index])
		right, rightErr := strconv.ParseBool(condition.Value)
		if leftErr != nil || rightErr != nil {
			cmp = strings.Compare(row[condition.Index], condition.Value)
		} else if left != right {
			cmp = 1
			if !left {
				cmp = -1
			}
		}
	default:
		cmp = strings.Compare(row[condition.Index], condition.Value)
	}

	switch condition.Operator {
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case Less:
		return cmp < 0
	case Greater:
		return cmp > 0
	case LessOrEqual:
		return cmp <= 0
	case GreaterOrEqual:
		return cmp >= 0
	}
	return false
}

type Assignment struct {
	Index int
	Value string
}

// ParseAssignments parses "column = value, ..." validating every value
func ParseAssignments(text string, table core.Table) ([]Assignment, error) {
	items := core.SplitList(text)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: nothing to set", ErrInvalidSet)
	}

	assignments := make([]Assignment, 0, len(items))
	for _, item := range items {
		position, token, operator, ok := findOperator(item)
		if !ok || operator != Equal || token != "=" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSet, item)
		}

		name := strings.TrimSpace(item[:position])
		index, ok := table.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}

		value := core.Unquote(item[position+1:])
		if err := table.Columns[index].ValidateValue(value); err != nil {
			return nil, err
		}

		assignments = append(assignments, Assignment{Index: index, Value: value})
	}

	return assignments, nil
}
