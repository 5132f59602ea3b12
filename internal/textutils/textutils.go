// Package textutils provides text normalization helpers shared by the
// statement parsers.
package textutils

import (
	"regexp"
	"strings"
)

// accentReplacer maps the accented characters that occur in Brazilian bank
// statement headers to their ASCII equivalents.
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A", "Ä", "A",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
	"Ó", "O", "Ò", "O", "Ô", "O", "Õ", "O", "Ö", "O",
	"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
	"Ç", "C", "Ñ", "N",
)

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// StripAccents replaces accented characters with their ASCII equivalents.
func StripAccents(s string) string {
	return accentReplacer.Replace(s)
}

// NormalizeKey reduces a column header to a canonical lookup key: accents
// stripped, every non-word run replaced by a single underscore, lowercased.
// "Data Lançamento" and "data_lancamento" resolve to the same key.
func NormalizeKey(s string) string {
	s = StripAccents(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}

// CollapseWhitespace trims a string and collapses internal whitespace runs
// to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}
