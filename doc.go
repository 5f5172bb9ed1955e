// Package DirDB is a line-oriented interpreter for a small SQL-like
// dialect that mirrors databases and tables onto a directory tree.
//
// Every database is a directory under the storage root and every table is
// a file inside it. Statements end with ";" and may span several lines;
// the line ".exit" ends the session.
//
// # Quick Start
//
// Run a script against an in-memory store:
//
//	persistence, _ := ps.NewMemoryPersistence()
//	instance := DirDB.Open(&persistence)
//	engine := instance.Engine(core.Identity{Name: "App", Email: "app@example.com"})
//
//	script := strings.NewReader(`
//	    CREATE DATABASE db_1;
//	    USE db_1;
//	    CREATE TABLE tbl_1 (a1 int, a2 varchar(20));
//	    INSERT INTO tbl_1 values(1, 'Gizmo');
//	    SELECT * FROM tbl_1;
//	    .exit`)
//	DirDB.Run(engine, sql.NewReader(script), os.Stdout)
//
// # Supported Statements
//
//   - CREATE/DROP DATABASE, USE
//   - CREATE/DROP TABLE, ALTER TABLE ... ADD | DROP | MODIFY
//   - INSERT INTO ... values(...)
//   - SELECT ... FROM ... [WHERE ...]
//   - UPDATE ... SET ... [WHERE ...]
//   - DELETE FROM ... [WHERE ...]
//
// Column types are int, float, char(n), varchar(n), text and bool.
//
// # Journal
//
// With ps.WithJournal the storage root is also a Git work tree and every
// change to it is committed, tagged with the session that made it.
package DirDB
