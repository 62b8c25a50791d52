package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName normaliza un nombre de producto para comparación:
// minúsculas, sin tildes/diacríticos y sin espacios sobrantes.
// "Concentrado Lechón" y "concentrado lechon" quedan iguales.
func NormalizeName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// NameMatches indica si hint coincide con name por subcadena,
// insensible a mayúsculas y acentos.
func NameMatches(name, hint string) bool {
	n := NormalizeName(name)
	h := NormalizeName(hint)
	if n == "" || h == "" {
		return false
	}
	return strings.Contains(n, h) || strings.Contains(h, n)
}
