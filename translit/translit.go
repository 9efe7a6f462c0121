// Package translit folds Turkish-alphabet characters into their closest
// ASCII equivalents so filings can be processed by systems that only accept
// Latin text.
package translit

import "strings"

// turkish maps each Turkish character without a direct ASCII form to its
// closest Latin letter.
var turkish = map[rune]rune{
	'ı': 'i', 'İ': 'I',
	'ğ': 'g', 'Ğ': 'G',
	'ü': 'u', 'Ü': 'U',
	'ş': 's', 'Ş': 'S',
	'ö': 'o', 'Ö': 'O',
	'ç': 'c', 'Ç': 'C',
}

// Transliterate replaces Turkish characters with ASCII equivalents and leaves
// every other rune untouched, including other accented Unicode. Idempotent:
// applying it twice gives the same result as applying it once, so records may
// safely be normalized again at persistence time.
func Transliterate(s string) string {
	return strings.Map(func(r rune) rune {
		if repl, ok := turkish[r]; ok {
			return repl
		}
		return r
	}, s)
}
