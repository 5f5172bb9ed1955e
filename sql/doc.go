// Package sql reads, scans and parses the DirDB command dialect.
//
// The dialect is deliberately loose: statements are split into words and
// keyword-introduced clauses rather than tokenised against a grammar. Clause
// text (projections, WHERE and SET conditions, value lists, column
// definitions) is passed on raw to package op.
//
// # Reader Usage
//
// Reader turns an input stream into one statement at a time:
//
//	reader := sql.NewReader(os.Stdin)
//	for {
//	    statement, err := reader.Next()
//	    if errors.Is(err, sql.ErrExit) || err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// A statement ends with ';' as the last non-blank character of its first
// line, or else at the next ';' anywhere in the following input. Blank lines
// and lines starting with "--" are skipped, and ".exit" on a line of its own
// ends the stream.
//
// # Scanner Usage
//
//	scanner := sql.NewScanner("a,b FROM t WHERE x=1")
//	projection, _ := scanner.ExtractFromClause() // "a,b"
//	table := scanner.NextWord()                 // "t"
//	where, _ := scanner.ExtractWhereClause()    // "x=1"
//
// Extractors shrink the scanner text, so the order they are called in matters.
//
// # Parser Usage
//
//	statement, err := sql.Parse("SELECT * FROM Product WHERE price > 10")
//	if errors.Is(err, sql.ErrIncorrectCommand) {
//	    ...
//	}
//
// # Supported Statements
//   - CreateDatabaseStatement, CreateTableStatement
//   - DropDatabaseStatement, DropTableStatement
//   - UseStatement
//   - SelectStatement, InsertStatement, UpdateStatement, DeleteStatement
//   - AlterTableStatement
//   - ExitStatement
package sql
