package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// latinFold maps Latin letters that NFD cannot decompose (no combining
// mark to strip) onto their ASCII counterparts. Keys are lowercase
// because the map is applied after ToLower.
var latinFold = map[rune]string{
	'ø': "o",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'þ': "th",
	'ħ': "h",
	'ı': "i",
	'ŋ': "ng",
}

// Fold lowercases the input, strips combining diacritical marks and
// transliterates the non-decomposable Latin letters, so "Müller" and
// "muller" compare equal and so do "Ødegaard" and "Odegaard". Anything
// else passes through.
func Fold(value string) string {
	folded, _, err := transform.String(foldChain, value)
	if err != nil {
		folded = value
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	if !strings.ContainsFunc(folded, func(r rune) bool {
		_, ok := latinFold[r]
		return ok
	}) {
		return folded
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if ascii, ok := latinFold[r]; ok {
			b.WriteString(ascii)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FoldEqual reports whether two strings are equal after folding.
func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}
