// Package ignore compiles the glob pattern lists spec §4.3 calls the
// "pattern set" into matchers usable during stow planning: ignore patterns
// (skip outright) and defer patterns (skip only when the target already
// exists).
package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// PatternType identifies whether a pattern includes or excludes files.
type PatternType int

const (
	// PatternInclude represents a normal pattern.
	PatternInclude PatternType = iota
	// PatternExclude represents a negation pattern that un-matches files
	// a preceding pattern in the same list matched.
	PatternExclude
)

// Pattern is a compiled glob matcher.
type Pattern struct {
	original string
	regex    *regexp.Regexp
	typ      PatternType
}

// NewPattern compiles a glob pattern. A leading "!" marks a negation
// pattern.
func NewPattern(glob string) domain.Result[*Pattern] {
	typ := PatternInclude
	original := glob

	if strings.HasPrefix(glob, "!") {
		typ = PatternExclude
		glob = glob[1:]
	}

	compiled, err := regexp.Compile(GlobToRegex(glob))
	if err != nil {
		return domain.Err[*Pattern](fmt.Errorf("compile pattern %q: %w", original, err))
	}

	return domain.Ok(&Pattern{original: original, regex: compiled, typ: typ})
}

// Match reports whether path matches the pattern, per spec §4.3: a hit
// against the full path string, the final path component, or any interior
// component all count.
func (p *Pattern) Match(path string) bool {
	if p.regex.MatchString(path) {
		return true
	}
	for _, part := range splitComponents(path) {
		if p.regex.MatchString(part) {
			return true
		}
	}
	return false
}

func splitComponents(path string) []string {
	clean := filepath.ToSlash(path)
	parts := strings.Split(clean, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns the original pattern text, including any "!" prefix.
func (p *Pattern) String() string {
	return p.original
}

// IsNegation reports whether this is a negation pattern.
func (p *Pattern) IsNegation() bool {
	return p.typ == PatternExclude
}

// GlobToRegex converts a glob pattern to an anchored regex. Supports * (any
// run of characters, path separators included) and ? (any one character).
// A bracketed group such as [1] is not a character class: it is matched
// literally, as is every other character.
func GlobToRegex(glob string) string {
	var out strings.Builder
	out.WriteString("^")

	for i := 0; i < len(glob); i++ {
		ch := glob[i]

		switch ch {
		case '*':
			out.WriteString(".*")

		case '?':
			out.WriteString(".")

		case '[':
			j := i + 1
			for j < len(glob) && glob[j] != ']' {
				j++
			}
			if j < len(glob) && j > i+1 {
				out.WriteString(regexp.QuoteMeta(glob[i : j+1]))
				i = j
			} else {
				out.WriteString(regexp.QuoteMeta(string(ch)))
			}

		case '.', '+', '(', ')', '|', '^', '$', '{', '}', '\\':
			out.WriteString("\\")
			out.WriteByte(ch)

		default:
			out.WriteByte(ch)
		}
	}

	out.WriteString("$")
	return out.String()
}
