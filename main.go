package DirDB

import (
	"errors"
	"fmt"
	"io"

	"github.com/nickyhof/DirDB/core"
	"github.com/nickyhof/DirDB/db"
	"github.com/nickyhof/DirDB/ps"
	"github.com/nickyhof/DirDB/sql"
)

// ClosingLine is written when a session ends
const ClosingLine = "-- All done."

type Instance struct {
	Persistence *ps.Persistence
}

func Open(persistence *ps.Persistence) *Instance {
	return &Instance{
		Persistence: persistence,
	}
}

func (instance *Instance) Engine(identity core.Identity) *db.Engine {
	return db.NewEngine(instance.Persistence, identity)
}

// Dispatcher executes one statement, writes its outcome and reports
// whether the session should end. *db.Engine is a Dispatcher.
type Dispatcher interface {
	Dispatch(w io.Writer, statement string) bool
}

// Run feeds statements to the dispatcher until the exit command or the end
// of input, then writes the closing line. Only read failures are returned.
func Run(engine Dispatcher, reader *sql.Reader, out io.Writer) error {
	for {
		statement, err := reader.Next()
		if errors.Is(err, sql.ErrExit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read statement: %w", err)
		}

		if engine.Dispatch(out, statement) {
			break
		}
	}

	fmt.Fprintln(out, ClosingLine)
	return nil
}
