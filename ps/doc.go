// Package ps provides the persistence layer for DirDB.
//
// Every database is a directory under the storage root and every table is a
// single file inside its database directory. The layer works on a go-billy
// filesystem, so the same code serves the on-disk root and in-memory tests.
//
// # Memory Persistence
//
// For testing or ephemeral databases:
//
//	persistence, err := ps.NewMemoryPersistence()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # File Persistence
//
// For persistent storage, creating the root if it does not exist:
//
//	persistence, err := ps.NewFilePersistence("/path/to/DatabaseSystem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Journal
//
// WithJournal turns the storage root into a Git work tree. Each successful
// change is committed with the caller's identity, giving a history of the
// directory tree:
//
//	persistence, _ := ps.NewFilePersistence(root, ps.WithJournal())
//	for _, txn := range persistence.Transactions() {
//	    fmt.Println(txn)
//	}
//
// # Table Files
//
// A table file holds its column definitions on the first line and one row
// per following line, fields separated by " | ":
//
//	pid int | name varchar(20) | price float
//	1 | Gizmo | 19.99
package ps
