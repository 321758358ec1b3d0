// Package tokenizer splits raw text lines into word tokens.
//
// Two policies are supported and a single run must use only one:
//   - Fields splits on whitespace and strips one trailing '.' or ','.
//   - NonWord splits on runs of characters that are not letters, marks,
//     digits or underscores.
//
// Tokens are returned in line order and, within a line, in reading order.
// Case is left untouched; empty tokens are dropped.
package tokenizer

import (
	"fmt"
	"regexp"
	"strings"
)

// Policy selects how lines are split.
type Policy string

const (
	Fields  Policy = "fields"
	NonWord Policy = "nonword"
)

// nonWordPattern matches the separators used by the NonWord policy.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]+`)

// trailingPunct matches the single trailing character stripped by Fields.
var trailingPunct = regexp.MustCompile(`[.,]$`)

// ParsePolicy maps a configuration value onto a Policy. The empty string
// selects Fields.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Fields:
		return Fields, nil
	case NonWord:
		return NonWord, nil
	default:
		return "", fmt.Errorf("unknown tokenizer policy %q (want %q or %q)", s, Fields, NonWord)
	}
}

// Tokenizer splits lines according to its Policy.
type Tokenizer struct {
	policy Policy
}

// New returns a Tokenizer for p. Unknown policies fall back to Fields.
func New(p Policy) *Tokenizer {
	if p != NonWord {
		p = Fields
	}
	return &Tokenizer{policy: p}
}

// Policy returns the active policy.
func (t *Tokenizer) Policy() Policy {
	return t.policy
}

// Tokenize flattens lines into tokens.
func (t *Tokenizer) Tokenize(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		tokens = append(tokens, t.Line(line)...)
	}
	return tokens
}

// Line splits a single line.
func (t *Tokenizer) Line(line string) []string {
	var raw []string
	if t.policy == NonWord {
		raw = nonWordPattern.Split(line, -1)
	} else {
		raw = strings.Fields(line)
	}

	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if t.policy == Fields {
			token = trailingPunct.ReplaceAllString(token, "")
		}
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
