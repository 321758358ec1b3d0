// Package words defines the canonical Word value and the helpers that turn raw
// tokens into Words.
package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrBlankWord is returned when a Word is constructed from an empty or
// whitespace-only string.
var ErrBlankWord = errors.New("word can not be blank")

// Word is the canonical form of a token: NFC-normalized, trimmed and
// uppercased. The zero value is not a valid Word.
type Word struct {
	word string
}

// New builds a Word from raw. It fails with ErrBlankWord for blank input.
func New(raw string) (Word, error) {
	canonical := canonicalize(raw)
	if canonical == "" {
		return Word{}, fmt.Errorf("new word %q: %w", raw, ErrBlankWord)
	}
	return Word{word: canonical}, nil
}

// MustNew is like New but panics on blank input. Intended for literals.
func MustNew(raw string) Word {
	w, err := New(raw)
	if err != nil {
		panic(err)
	}
	return w
}

// canonicalize trims, uppercases and normalizes s. Uppercasing can emit
// decomposed sequences, so NFC is applied again afterwards to keep the result
// a fixed point. cases.Caser is stateful, so one is built per call.
func canonicalize(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if s == "" {
		return ""
	}
	return norm.NFC.String(cases.Upper(language.Und).String(s))
}

// String returns the canonical string.
func (w Word) String() string {
	return w.word
}

// IsZero reports whether w was never constructed.
func (w Word) IsZero() bool {
	return w.word == ""
}

// FirstLetter returns the first code point of the canonical string, or "" for
// the zero Word.
func (w Word) FirstLetter() string {
	if w.word == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(w.word)
	return string(r)
}
