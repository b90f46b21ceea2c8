package placeholder

import (
	"strings"
	"unicode"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenScalar
	tokenEachOpen
	tokenIfOpen
	tokenEachClose
	tokenIfClose
	tokenHelper
	tokenUnknown
)

type token struct {
	kind tokenKind
	raw  string
	pos  int
	key  string
	name string
	args []string
}

// tokenize splits markup into text runs and tags. A "{{" without a matching
// "}}" stays text; tags whose body is not a recognised construct become
// tokenUnknown so the parser can emit them verbatim.
func tokenize(input string) []token {
	var tokens []token
	i := 0
	for i < len(input) {
		open := strings.Index(input[i:], openDelim)
		if open < 0 {
			tokens = append(tokens, token{kind: tokenText, raw: input[i:], pos: i})
			break
		}
		open += i
		// In a run of braces the tag starts at the last "{{".
		for open+len(openDelim) < len(input) && input[open+len(openDelim)] == '{' {
			open++
		}
		if open > i {
			tokens = append(tokens, token{kind: tokenText, raw: input[i:open], pos: i})
		}

		closeAt := strings.Index(input[open+len(openDelim):], closeDelim)
		if closeAt < 0 {
			tokens = append(tokens, token{kind: tokenText, raw: input[open:], pos: open})
			break
		}
		closeAt += open + len(openDelim)

		// A second "{{" before the close means the first one is stray text.
		bodyStart := open + len(openDelim)
		if inner := strings.Index(input[bodyStart:closeAt], openDelim); inner >= 0 {
			restart := bodyStart + inner
			tokens = append(tokens, token{kind: tokenText, raw: input[open:restart], pos: open})
			i = restart
			continue
		}

		end := closeAt + len(closeDelim)
		raw := input[open:end]
		tokens = append(tokens, classify(raw, input[bodyStart:closeAt], open))
		i = end
	}
	return mergeText(tokens)
}

func classify(raw, body string, pos int) token {
	tok := token{kind: tokenUnknown, raw: raw, pos: pos}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return tok
	}

	fields := strings.Fields(trimmed)
	head := fields[0]

	switch {
	case head == "#each" || head == "#if":
		if len(fields) != 2 || !validKey(fields[1]) {
			return tok
		}
		tok.key = fields[1]
		if head == "#each" {
			tok.kind = tokenEachOpen
		} else {
			tok.kind = tokenIfOpen
		}
		return tok
	case head == "/each" && len(fields) == 1:
		tok.kind = tokenEachClose
		return tok
	case head == "/if" && len(fields) == 1:
		tok.kind = tokenIfClose
		return tok
	}

	if len(fields) == 1 {
		if validKey(head) {
			tok.kind = tokenScalar
			tok.key = head
		}
		return tok
	}

	if arity, ok := helperArity[head]; ok && len(fields)-1 == arity {
		for _, arg := range fields[1:] {
			if !validKey(arg) {
				return tok
			}
		}
		tok.kind = tokenHelper
		tok.name = head
		tok.args = append([]string(nil), fields[1:]...)
	}
	return tok
}

// helperArity lists the inline helpers the grammar recognises.
var helperArity = map[string]int{
	HelperMultiply: 2,
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r == '_' || r == '-' || r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return key[0] != '.' && key[len(key)-1] != '.'
}

func mergeText(tokens []token) []token {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]token, 0, len(tokens))
	out = append(out, tokens[0])
	for _, tok := range tokens[1:] {
		last := &out[len(out)-1]
		if tok.kind == tokenText && last.kind == tokenText {
			last.raw += tok.raw
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ValidKey reports whether key is usable as a placeholder key: letters,
// digits, '_', '-' and '.', with no leading or trailing dot.
func ValidKey(key string) bool {
	return validKey(key)
}
