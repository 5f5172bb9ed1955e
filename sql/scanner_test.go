package sql

import (
	"testing"
)

func TestNextWord(t *testing.T) {
	scanner := NewScanner("  CREATE   TABLE\ttbl_1 (a1 int)")

	expected := []string{"CREATE", "TABLE", "tbl_1", "(a1", "int)", "", ""}
	for i, want := range expected {
		if got := scanner.NextWord(); got != want {
			t.Fatalf("Word %d: expected '%s', got '%s'", i, want, got)
		}
	}
}

func TestPeekWordDoesNotConsume(t *testing.T) {
	scanner := NewScanner("use db_1")

	if scanner.PeekWord() != "use" {
		t.Errorf("Expected peek to return 'use'")
	}
	if scanner.PeekWord() != "use" {
		t.Errorf("Expected second peek to return 'use'")
	}
	if scanner.NextWord() != "use" {
		t.Errorf("Expected next to return 'use'")
	}
	if scanner.Text() != "db_1" {
		t.Errorf("Expected remaining text 'db_1', got '%s'", scanner.Text())
	}
}

func TestSelectExtractionOrder(t *testing.T) {
	scanner := NewScanner("SELECT a,b FROM t WHERE x=1")
	scanner.NextWord()

	projection, found := scanner.ExtractFromClause()
	if !found || projection != "a,b" {
		t.Fatalf("Expected projection 'a,b', got '%s' (found=%v)", projection, found)
	}

	table := scanner.NextWord()
	if table != "t" {
		t.Fatalf("Expected table 't', got '%s'", table)
	}

	where, found := scanner.ExtractWhereClause()
	if !found || where != "x=1" {
		t.Fatalf("Expected where 'x=1', got '%s' (found=%v)", where, found)
	}

	if scanner.Text() != "" {
		t.Errorf("Expected no leftover text, got '%s'", scanner.Text())
	}
}

func TestExtractorsWithoutMatchLeaveTextAlone(t *testing.T) {
	scanner := NewScanner("Product")

	if clause, found := scanner.ExtractFromClause(); found || clause != "" {
		t.Errorf("Expected no FROM match")
	}
	if clause, found := scanner.ExtractWhereClause(); found || clause != "" {
		t.Errorf("Expected no WHERE match")
	}
	if clause, found := scanner.ExtractSetClause(); found || clause != "" {
		t.Errorf("Expected no SET match")
	}
	if scanner.Text() != "Product" {
		t.Errorf("Expected text to be unchanged, got '%s'", scanner.Text())
	}
}

func TestExtractorsUseLastOccurrence(t *testing.T) {
	scanner := NewScanner("name from Product where a = 1 WHERE b = 2")

	where, _ := scanner.ExtractWhereClause()
	if where != "b = 2" {
		t.Errorf("Expected last WHERE clause 'b = 2', got '%s'", where)
	}
	if scanner.Text() != "name from Product where a = 1 " {
		t.Errorf("Unexpected remaining text '%s'", scanner.Text())
	}
}

func TestExtractorsMatchInsideWords(t *testing.T) {
	scanner := NewScanner("assets")

	clause, found := scanner.ExtractSetClause()
	if !found {
		t.Fatalf("Expected 'set' inside 'assets' to match")
	}
	if clause != "" {
		t.Errorf("Expected empty clause, got '%s'", clause)
	}
	if scanner.Text() != "as" {
		t.Errorf("Expected 'as' to remain, got '%s'", scanner.Text())
	}
}

func TestExtractorsAtEndOfText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		extract func(*Scanner) (string, bool)
	}{
		{"from", "x from", (*Scanner).ExtractFromClause},
		{"where", "t where", (*Scanner).ExtractWhereClause},
		{"set", "SET", (*Scanner).ExtractSetClause},
		{"short text", "se", (*Scanner).ExtractSetClause},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scanner := NewScanner(test.text)
			// must not read past the end of the text
			test.extract(scanner)
		})
	}
}

func TestExtractFromClauseConsumesKeywordAndSeparator(t *testing.T) {
	scanner := NewScanner("FROM Product WHERE pid = 1")

	projection, found := scanner.ExtractFromClause()
	if !found || projection != "" {
		t.Errorf("Expected empty projection, got '%s'", projection)
	}
	if scanner.Text() != "Product WHERE pid = 1" {
		t.Errorf("Unexpected remaining text '%s'", scanner.Text())
	}
}

func TestLastIndexFold(t *testing.T) {
	tests := []struct {
		text     string
		keyword  string
		expected int
	}{
		{"", "from", -1},
		{"fro", "from", -1},
		{"FROM", "from", 0},
		{"a FrOm b from c", "from", 9},
		{"héllo where", "where", 7},
	}

	for _, test := range tests {
		if got := lastIndexFold(test.text, test.keyword); got != test.expected {
			t.Errorf("lastIndexFold(%q, %q): expected %d, got %d", test.text, test.keyword, test.expected, got)
		}
	}
}
