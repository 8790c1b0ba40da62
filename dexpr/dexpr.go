// Package dexpr checks user supplied data transform expressions for
// constructs that must never reach an evaluator.
package dexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnsafeExpressionError is returned by Check for a rejected expression.
type UnsafeExpressionError struct {
	// Construct names the first disallowed construct found.
	Construct string
}

func (e *UnsafeExpressionError) Error() string {
	return fmt.Sprintf("unsafe expression: %s is not allowed", e.Construct)
}

type rule struct {
	construct string
	re        *regexp.Regexp
}

var rules = []rule{
	{"eval", regexp.MustCompile(`\beval\s*\(`)},
	{"Function", regexp.MustCompile(`\bFunction\b`)},
	{"window", regexp.MustCompile(`\bwindow\b`)},
	{"document", regexp.MustCompile(`\bdocument\b`)},
	{"globalThis", regexp.MustCompile(`\bglobalThis\b`)},
	{"import", regexp.MustCompile(`\bimport\s*\(`)},
	{"require", regexp.MustCompile(`\brequire\s*\(`)},
	{"fetch", regexp.MustCompile(`\bfetch\s*\(`)},
	{"XMLHttpRequest", regexp.MustCompile(`\bXMLHttpRequest\b`)},
	{"WebSocket", regexp.MustCompile(`\bWebSocket\b`)},
	{"setTimeout", regexp.MustCompile(`\bsetTimeout\b`)},
	{"setInterval", regexp.MustCompile(`\bsetInterval\b`)},
	{"constructor", regexp.MustCompile(`\bconstructor\b`)},
	{"__proto__", regexp.MustCompile(`__proto__`)},
	{"prototype", regexp.MustCompile(`\bprototype\b`)},
	// do {} while(true) is caught by the while rule.
	{"while(true)", regexp.MustCompile(`\bwhile\s*\(\s*(true|1|!0|!false)\s*\)`)},
	{"for(;;)", regexp.MustCompile(`\bfor\s*\(\s*;\s*;\s*\)`)},
}

var (
	blockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	unicodeEsc   = regexp.MustCompile(`\\u\{([0-9a-fA-F]{1,6})\}|\\u([0-9a-fA-F]{4})`)
)

// Check returns an *UnsafeExpressionError if expr contains a disallowed
// construct. The expression is NFKC normalised, stripped of format
// characters and has its \u escapes decoded before matching, matching is
// done with and without comments.
func Check(expr string) error {
	s, err := canonical(expr)
	if err != nil {
		return err
	}
	stripped := lineComment.ReplaceAllString(blockComment.ReplaceAllString(s, " "), " ")
	for _, r := range rules {
		if r.re.MatchString(s) || r.re.MatchString(stripped) {
			return &UnsafeExpressionError{Construct: r.construct}
		}
	}
	return nil
}

func canonical(expr string) (string, error) {
	t := transform.Chain(runes.Remove(runes.In(unicode.Cf)), norm.NFKC)
	s, _, err := transform.String(t, expr)
	if err != nil {
		return "", fmt.Errorf("dexpr: normalising expression: %w", err)
	}
	return unicodeEsc.ReplaceAllStringFunc(s, func(m string) string {
		sub := unicodeEsc.FindStringSubmatch(m)
		hex := sub[1]
		if hex == "" {
			hex = sub[2]
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || n > unicode.MaxRune {
			return m
		}
		return string(rune(n))
	}), nil
}
