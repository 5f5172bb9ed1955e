// Package core provides core types used throughout DirDB.
//
// The package defines fundamental types like Identity, Database, Table,
// Column, and the column-definition grammar accepted by CREATE TABLE and
// ALTER TABLE.
//
// # Identity
//
// Identity identifies the author of journal commits:
//
//	identity := core.Identity{
//	    Name:  "John Doe",
//	    Email: "john@example.com",
//	}
//
// # Column Types
//
// Supported column types:
//   - IntType: Integers (int)
//   - FloatType: Floating point numbers (float)
//   - CharType: Fixed width strings (char(n))
//   - VarcharType: Bounded strings (varchar(n))
//   - TextType: Unbounded strings (text)
//   - BoolType: Boolean values (bool)
//
// # Column Definitions
//
//	columns, err := core.ParseColumns("(a1 int, a2 varchar(20))")
//	if errors.Is(err, core.ErrInvalidColumn) {
//	    // rejected definition, nothing was created
//	}
package core
