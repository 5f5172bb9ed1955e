package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidColumn = errors.New("invalid column definition")
	ErrInvalidValue  = errors.New("invalid value")
)

// ParseColumns parses the parenthesised definition list that follows a
// table name, e.g. "(a1 int, a2 varchar(20))".
func ParseColumns(definition string) ([]Column, error) {
	open := strings.Index(definition, "(")
	end := strings.LastIndex(definition, ")")
	if open < 0 || end < open {
		return nil, fmt.Errorf("%w: expected a parenthesised column list", ErrInvalidColumn)
	}

	parts := SplitList(definition[open+1 : end])
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no columns given", ErrInvalidColumn)
	}

	columns := make([]Column, 0, len(parts))
	for _, part := range parts {
		column, err := ParseColumn(part)
		if err != nil {
			return nil, err
		}
		for _, existing := range columns {
			if strings.EqualFold(existing.Name, column.Name) {
				return nil, fmt.Errorf("%w: duplicate column %s", ErrInvalidColumn, column.Name)
			}
		}
		columns = append(columns, column)
	}

	return columns, nil
}

// ParseColumn parses a single "<name> <type>" definition.
func ParseColumn(text string) (Column, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return Column{}, fmt.Errorf("%w: empty column", ErrInvalidColumn)
	case 1:
		return Column{}, fmt.Errorf("%w: column %s has no type", ErrInvalidColumn, fields[0])
	case 2:
	default:
		return Column{}, fmt.Errorf("%w: unexpected %q after column %s", ErrInvalidColumn, strings.Join(fields[2:], " "), fields[0])
	}

	columnType, size, err := ParseColumnType(fields[1])
	if err != nil {
		return Column{}, err
	}

	return Column{Name: fields[0], Type: columnType, Size: size}, nil
}

// ParseColumnType parses a type name such as "int" or "varchar(20)".
func ParseColumnType(text string) (ColumnType, int, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	size := 0

	if open := strings.Index(name, "("); open >= 0 {
		if !strings.HasSuffix(name, ")") {
			return 0, 0, fmt.Errorf("%w: malformed type %s", ErrInvalidColumn, text)
		}
		n, err := strconv.Atoi(strings.TrimSpace(name[open+1 : len(name)-1]))
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("%w: bad size in type %s", ErrInvalidColumn, text)
		}
		size = n
		name = name[:open]
	}

	for columnType, typeName := range columnTypeNames {
		if typeName != name {
			continue
		}
		if columnType.Sized() && size == 0 {
			return 0, 0, fmt.Errorf("%w: type %s needs a size", ErrInvalidColumn, text)
		}
		if !columnType.Sized() && size != 0 {
			return 0, 0, fmt.Errorf("%w: type %s takes no size", ErrInvalidColumn, text)
		}
		return columnType, size, nil
	}

	return 0, 0, fmt.Errorf("%w: unknown type %s", ErrInvalidColumn, text)
}

// ValidateValue checks that an unquoted value fits the column.
func (column Column) ValidateValue(value string) error {
	if strings.ContainsAny(value, "|\n") {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidValue, value)
	}

	switch column.Type {
	case IntType:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("%w: %q is not an int for column %s", ErrInvalidValue, value, column.Name)
		}
	case FloatType:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %q is not a float for column %s", ErrInvalidValue, value, column.Name)
		}
	case BoolType:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %q is not a bool for column %s", ErrInvalidValue, value, column.Name)
		}
	case CharType, VarcharType:
		if len(value) > column.Size {
			return fmt.Errorf("%w: %q is longer than %s", ErrInvalidValue, value, column.TypeString())
		}
	}

	return nil
}

// SplitList splits a comma separated list, ignoring commas inside single
// quotes or parentheses. Items are trimmed; a blank list yields nil.
func SplitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var items []string
	var current strings.Builder
	depth := 0
	inString := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '\'':
			inString = !inString
		case inString:
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == ',' && depth == 0:
			items = append(items, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}

	return append(items, strings.TrimSpace(current.String()))
}

// Unquote strips one pair of surrounding single quotes.
func Unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}
