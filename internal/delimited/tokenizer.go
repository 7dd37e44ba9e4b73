// Package delimited splits raw statement text into rows and resolves file
// headers against the canonical column names.
package delimited

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DetectDelimiter infers the field delimiter from the first non-empty line:
// semicolon when present, comma otherwise.
func DetectDelimiter(line string) rune {
	if strings.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

// SplitFields splits one line into trimmed, quote-stripped fields.
func SplitFields(line string, delimiter rune) []string {
	raw := strings.Split(line, string(delimiter))
	fields := make([]string, len(raw))
	for i, f := range raw {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
			f = strings.TrimSpace(f[1 : len(f)-1])
		}
		fields[i] = f
	}
	return fields
}

// Lines splits raw statement text into its non-empty lines, tolerating both
// Unix and Windows line endings.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader folds a header name for matching: diacritics stripped,
// case folded, surrounding whitespace trimmed. "Descrição" and "DESCRICAO"
// normalize to the same key.
func NormalizeHeader(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
