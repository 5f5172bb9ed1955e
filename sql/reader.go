package sql

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

const (
	ExitCommand   = ".exit"
	Terminator    = ';'
	CommentPrefix = "--"
)

// ErrExit is returned by Reader.Next once the exit command has been read
var ErrExit = errors.New("exit requested")

// Reader yields one terminator-free, single-line statement at a time.
type Reader struct {
	in      *bufio.Reader
	pending *string // rest of a line after a continuation terminator

	// Prompt, if set, is called before each line is read from the input.
	Prompt func(continuation bool)

	// Command, if set, is offered every line that starts a statement with
	// a dot, other than the exit command. Lines it accepts are consumed.
	Command func(line string) bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{in: bufio.NewReader(r)}
}

// Next returns the next statement. It returns ErrExit when the exit command
// is read, even in the middle of a multi-line statement, and io.EOF when the
// input ends. A statement still open at the end of input is discarded.
func (reader *Reader) Next() (string, error) {
	for {
		line, err := reader.readLine(false)
		if err != nil {
			return "", err
		}

		if IsExit(line) {
			return "", ErrExit
		}
		if isSkippable(line) {
			continue
		}
		if reader.Command != nil && strings.HasPrefix(strings.TrimSpace(line), ".") && reader.Command(strings.TrimSpace(line)) {
			continue
		}

		trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
		if trimmed[len(trimmed)-1] == Terminator {
			return strings.TrimSpace(trimmed[:len(trimmed)-1]), nil
		}

		return reader.continueStatement(line)
	}
}

// continueStatement reads until the next terminator anywhere in the input
// and joins the lines with single spaces.
func (reader *Reader) continueStatement(first string) (string, error) {
	parts := []string{first}

	for {
		line, err := reader.readLine(true)
		if err != nil {
			return "", err
		}

		if IsExit(line) {
			return "", ErrExit
		}
		if isSkippable(line) {
			continue
		}

		if index := strings.IndexByte(line, Terminator); index >= 0 {
			parts = append(parts, line[:index])
			if rest := line[index+1:]; strings.TrimSpace(rest) != "" {
				reader.pending = &rest
			}
			return strings.TrimSpace(strings.Join(parts, " ")), nil
		}

		parts = append(parts, line)
	}
}

func (reader *Reader) readLine(continuation bool) (string, error) {
	if reader.pending != nil {
		line := *reader.pending
		reader.pending = nil
		return line, nil
	}

	if reader.Prompt != nil {
		reader.Prompt(continuation)
	}

	line, err := reader.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// IsExit reports whether a line is the exit command, in any letter case
func IsExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), ExitCommand)
}

func isSkippable(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, CommentPrefix)
}
