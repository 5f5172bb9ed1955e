package db

import (
	"bytes"
	"errors"
	"testing"
)

func TestCommandErrorMessages(t *testing.T) {
	tests := []struct {
		err      *CommandError
		expected string
	}{
		{
			databaseError(DatabaseExists, "create", "db_1", nil),
			"-- !Failed to create database db_1 because it already exists.",
		},
		{
			databaseError(DatabaseNotExists, "use", "db_9", nil),
			"-- !Failed to use database db_9 because it does not exist.",
		},
		{
			tableError(TableExists, "create", "tbl_1", nil),
			"-- !Failed to create table tbl_1 because it already exists.",
		},
		{
			tableError(TableNotExists, "query", "tbl_3", nil),
			"-- !Failed to query table tbl_3 because it does not exist.",
		},
		{
			tableError(NoDatabaseSelected, "insert", "tbl_1", nil),
			"-- !Failed to insert table tbl_1 because no database is selected.",
		},
		{
			tableError(OperationFailed, "update", "tbl_1", errors.New("disk full")),
			"-- !Failed to update table tbl_1 because disk full.",
		},
		{
			incorrectCommand("FOO BAR", nil),
			"-- !Failed to complete command.\n-- !Incorrect instruction: FOO BAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer

	Report(&out, nil)
	Report(&out, tableError(TableNotExists, "drop", "tbl_1", nil))
	Report(&out, errors.New("boom"))

	expected := "-- !Failed to drop table tbl_1 because it does not exist.\n" +
		"-- !Failed to complete command because boom.\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}

func TestKind(t *testing.T) {
	cause := errors.New("cause")
	err := tableError(OperationFailed, "alter", "tbl_1", cause)

	kind, ok := Kind(err)
	if !ok || kind != OperationFailed {
		t.Errorf("Expected OperationFailed, got %v (%v)", kind, ok)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected CommandError to unwrap to its cause")
	}
	if _, ok := Kind(cause); ok {
		t.Error("Expected plain error to have no kind")
	}
}
