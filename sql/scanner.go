package sql

import (
	"strings"
	"unicode"
)

const (
	fromKeyword  = "from"
	whereKeyword = "where"
	setKeyword   = "set"
)

// Scanner walks a statement word by word. The clause extractors cut text out
// of the scanner, so each call sees what earlier calls left behind.
type Scanner struct {
	text string
}

func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Text returns the text that has not been consumed yet
func (scanner *Scanner) Text() string {
	return scanner.text
}

// NextWord returns the next run of non-blank characters and moves past it and
// the blanks that follow. It returns "" at the end of the text.
func (scanner *Scanner) NextWord() string {
	word, rest := splitWord(scanner.text)
	scanner.text = rest
	return word
}

// PeekWord returns what NextWord would return without consuming it
func (scanner *Scanner) PeekWord() string {
	word, _ := splitWord(scanner.text)
	return word
}

// ExtractFromClause finds the last "from" and returns the trimmed text in
// front of it. The text, the keyword and one separator are consumed.
func (scanner *Scanner) ExtractFromClause() (string, bool) {
	index := lastIndexFold(scanner.text, fromKeyword)
	if index < 0 {
		return "", false
	}

	projection := strings.TrimSpace(scanner.text[:index])
	scanner.text = scanner.text[clauseStart(scanner.text, index, fromKeyword):]
	return projection, true
}

// ExtractWhereClause finds the last "where" and returns the trimmed text
// after it. Everything from the keyword on is consumed.
func (scanner *Scanner) ExtractWhereClause() (string, bool) {
	return scanner.extractTrailing(whereKeyword)
}

// ExtractSetClause finds the last "set" and returns the trimmed text after
// it. Everything from the keyword on is consumed.
func (scanner *Scanner) ExtractSetClause() (string, bool) {
	return scanner.extractTrailing(setKeyword)
}

func (scanner *Scanner) extractTrailing(keyword string) (string, bool) {
	index := lastIndexFold(scanner.text, keyword)
	if index < 0 {
		return "", false
	}

	clause := strings.TrimSpace(scanner.text[clauseStart(scanner.text, index, keyword):])
	scanner.text = scanner.text[:index]
	return clause, true
}

// clauseStart is the offset just past the keyword at index and the single
// separator character that follows it, capped at the end of text.
func clauseStart(text string, index int, keyword string) int {
	return min(index+len(keyword)+1, len(text))
}

// lastIndexFold returns the offset of the last case-insensitive occurrence of
// keyword in text, or -1. Occurrences inside longer words count.
func lastIndexFold(text string, keyword string) int {
	for i := len(text) - len(keyword); i >= 0; i-- {
		if strings.EqualFold(text[i:i+len(keyword)], keyword) {
			return i
		}
	}
	return -1
}

func splitWord(text string) (word string, rest string) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		return text, ""
	}
	return text[:end], strings.TrimLeftFunc(text[end:], unicode.IsSpace)
}
