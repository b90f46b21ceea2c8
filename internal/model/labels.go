package model

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler turns a field id into a display label. Only the last dotted
// segment is used, so `benefits.healthInsurance` becomes "Health Insurance"
// and `term_months` becomes "Term Months".
func DefaultLabeler(id string) string {
	if idx := strings.LastIndexByte(id, '.'); idx >= 0 {
		id = id[idx+1:]
	}
	if id == "" {
		return ""
	}

	var words []string
	for _, part := range wordSeparators.Split(id, -1) {
		for _, word := range splitCamel(part) {
			words = append(words, capitalise(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(input)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func capitalise(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
