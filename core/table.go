package core

import (
	"fmt"
	"strings"
)

type ColumnType int

const (
	IntType ColumnType = iota
	FloatType
	CharType
	VarcharType
	TextType
	BoolType
)

var columnTypeNames = map[ColumnType]string{
	IntType:     "int",
	FloatType:   "float",
	CharType:    "char",
	VarcharType: "varchar",
	TextType:    "text",
	BoolType:    "bool",
}

func (columnType ColumnType) String() string {
	if name, ok := columnTypeNames[columnType]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(columnType))
}

// Sized reports whether the type carries a length, as char(n) and varchar(n) do.
func (columnType ColumnType) Sized() bool {
	return columnType == CharType || columnType == VarcharType
}

// Numeric reports whether values of the type compare as numbers.
func (columnType ColumnType) Numeric() bool {
	return columnType == IntType || columnType == FloatType
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
	Size int        `json:"size,omitempty"`
}

// TypeString renders the column type the way it is written in a definition.
func (column Column) TypeString() string {
	if column.Type.Sized() {
		return fmt.Sprintf("%s(%d)", column.Type, column.Size)
	}
	return column.Type.String()
}

func (column Column) String() string {
	return column.Name + " " + column.TypeString()
}

type Table struct {
	Database string   `json:"database"`
	Name     string   `json:"name"`
	Columns  []Column `json:"columns"`
}

// ColumnIndex finds a column by name, ignoring case.
func (table Table) ColumnIndex(name string) (int, bool) {
	for i, column := range table.Columns {
		if strings.EqualFold(column.Name, name) {
			return i, true
		}
	}
	return -1, false
}

type Database struct {
	Name string `json:"name"`
}

type Identity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Session string `json:"session,omitempty"`
}
