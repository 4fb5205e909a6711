// Package transform converts route paths into accessor tokens, identifiers and
// templates, and converts route lists to and from their nested structure.
package transform

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// ReservedSuffix is appended to identifiers that collide with a reserved word.
const ReservedSuffix = "_route"

// reservedWords are TypeScript keywords and literals that cannot name a binding.
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "undefined": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// IsReserved reports whether s is a reserved word.
func IsReserved(s string) bool {
	return reservedWords[s]
}

// AccessorTokens returns the identifier-safe tokens used to reach a route in
// the nested accessor object. The root route is the single token "index".
func AccessorTokens(path string) []string {
	if path == "/" || path == "" {
		return []string{"index"}
	}

	var tokens []string
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		tokens = append(tokens, SegmentToken(scanner.ParseSegment(part)))
	}
	if len(tokens) == 0 {
		return []string{"index"}
	}
	return tokens
}

// SegmentToken returns the accessor token for one classified segment.
func SegmentToken(seg scanner.Segment) string {
	switch seg.Type {
	case scanner.SegmentDynamic:
		return "by" + capitalize(SanitizeToken(seg.Name))
	case scanner.SegmentCatchAll:
		return "by" + capitalize(SanitizeToken(seg.Name)) + "Rest"
	case scanner.SegmentOptionalCatchAll:
		return "by" + capitalize(SanitizeToken(seg.Name)) + "Optional"
	default:
		return SanitizeToken(seg.Raw)
	}
}

// SanitizeToken camel-cases hyphens, replaces characters outside
// [A-Za-z0-9_$] with '_' and prefixes '_' when the first character
// cannot start an identifier.
func SanitizeToken(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		return "_"
	}
	if c := out[0]; c >= '0' && c <= '9' {
		out = "_" + out
	}
	return out
}

// SanitizeIdentifier sanitizes s and appends ReservedSuffix to reserved words.
func SanitizeIdentifier(s string) string {
	id := SanitizeToken(s)
	if IsReserved(id) {
		id += ReservedSuffix
	}
	return id
}

// Identifier joins accessor tokens into a top-level binding name.
func Identifier(tokens []string) string {
	return SanitizeIdentifier(strings.Join(tokens, "_"))
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// IsIdentifier reports whether s can be used as a bare identifier or object key.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Namer hands out unique identifiers, suffixing _2, _3, ... on collision.
type Namer struct {
	used map[string]bool
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]bool)}
}

// Reserve marks name as taken.
func (n *Namer) Reserve(name string) {
	n.used[name] = true
}

// Name returns a unique identifier for tokens.
func (n *Namer) Name(tokens []string) string {
	base := Identifier(tokens)
	name := base
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[name] = true
	return name
}
