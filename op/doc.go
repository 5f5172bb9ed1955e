// Package op implements the operations behind each DirDB statement.
//
// DatabaseOp and TableOp wrap a ps.Persistence and speak in terms of
// databases, tables and rows. They validate values against column types,
// evaluate where clauses and rewrite table files, leaving name bookkeeping
// to the caller.
//
//	_, tableOp, err := op.CreateTable("db_1", "tbl_1", "(a1 int, a2 varchar(20))", persistence, identity)
//	_, err = tableOp.Insert("1, 'Gizmo'", identity)
//	selection, err := tableOp.Select("*", "a1 > 0")
package op
