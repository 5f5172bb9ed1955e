// Package db dispatches DirDB statements.
//
// The Engine parses one statement at a time, checks it against the
// in-memory catalog and hands the work to the op package. Every statement
// ends in exactly one Result or one *CommandError.
//
// # Engine Usage
//
//	engine := db.NewEngine(persistence, identity)
//	if done := engine.Dispatch(os.Stdout, "CREATE DATABASE db_1"); done {
//	    return
//	}
//
// Execute returns the outcome instead of printing it:
//
//	result, err := engine.Execute("SELECT * FROM tbl_1")
//	if err != nil {
//	    db.Report(os.Stdout, err)
//	}
//
// # Diagnostics
//
// Failures render as transcript lines such as
//
//	-- !Failed to create database db_1 because it already exists.
//	-- !Failed to query table tbl_3 because it does not exist.
//
// and malformed statements echo the offending text:
//
//	-- !Failed to complete command.
//	-- !Incorrect instruction: SELEC * FROM tbl_1
package db
