// Package catalog is the in-memory mirror of the databases and tables that
// live under the storage root.
//
// Names are compared case-insensitively but stored with the case they were
// created with. Databases and tables keep their creation order.
//
//	cat := catalog.New()
//	db, _ := cat.AddDatabase("db_1")
//	db.AddTable("tbl_1")
//
//	found, _, ok := cat.Database("DB_1") // matches db_1
//
// The catalog is never persisted; the directory tree is its durable form and
// the bootstrapper in package db rebuilds it at startup.
package catalog
