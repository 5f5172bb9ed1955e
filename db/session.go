package db

import (
	"github.com/google/uuid"
)

// Session holds the storage root and the selected database of one run of
// the interpreter.
type Session struct {
	ID       string
	Root     string
	Database string // empty when no database is selected
}

func NewSession(root string) *Session {
	return &Session{
		ID:   uuid.NewString(),
		Root: root,
	}
}

func (session *Session) Use(database string) {
	session.Database = database
}

// Selected returns the selected database name, if any
func (session *Session) Selected() (string, bool) {
	return session.Database, session.Database != ""
}
