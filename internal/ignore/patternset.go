package ignore

// matcher is an ordered list of patterns evaluated left to right; a later
// pattern's verdict overrides an earlier one's, and negation patterns
// un-match what a preceding pattern matched.
type matcher struct {
	patterns []*Pattern
}

func (m *matcher) add(glob string) error {
	result := NewPattern(glob)
	if result.IsErr() {
		return result.UnwrapErr()
	}
	m.patterns = append(m.patterns, result.Unwrap())
	return nil
}

func (m *matcher) matches(path string) bool {
	matched := false
	for _, pattern := range m.patterns {
		if !pattern.Match(path) {
			continue
		}
		matched = !pattern.IsNegation()
	}
	return matched
}

// PatternSet holds the two compiled matcher lists spec §3/§4.3 define:
// ignore (skip outright) and defer (skip only when the target already
// exists).
type PatternSet struct {
	ignore matcher
	defer_ matcher
}

// NewPatternSet builds a PatternSet from the configured ignore and defer
// glob lists. Compilation stops at the first invalid pattern.
func NewPatternSet(ignoreGlobs, deferGlobs []string) (*PatternSet, error) {
	set := &PatternSet{}
	for _, glob := range ignoreGlobs {
		if err := set.ignore.add(glob); err != nil {
			return nil, err
		}
	}
	for _, glob := range deferGlobs {
		if err := set.defer_.add(glob); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// ShouldIgnore reports whether path must be skipped outright during
// planning, per spec §4.3.
func (s *PatternSet) ShouldIgnore(path string) bool {
	if s == nil {
		return false
	}
	return s.ignore.matches(path)
}

// ShouldDefer reports whether path is only considered when its target does
// not already exist. Callers are responsible for checking target existence
// before relying on this, per spec §4.3's "consulted only after the target
// path's existence is confirmed".
func (s *PatternSet) ShouldDefer(path string) bool {
	if s == nil {
		return false
	}
	return s.defer_.matches(path)
}

// NewDefaultPatternSet builds a PatternSet from the configured ignore/defer
// globs. There is no built-in ignore list: original_source/src/config.rs
// declares `ignore` with `#[serde(default)]`, empty unless the user
// populates it, and this mirrors that — ignore/defer are purely
// user-configured, never silently supplemented.
func NewDefaultPatternSet(extraIgnore, deferGlobs []string) (*PatternSet, error) {
	return NewPatternSet(extraIgnore, deferGlobs)
}
