package dbm

// Match is the injected predicate contract of §4.3: the reader never
// inspects its internals, and guarantees the candidate string is
// valid only until the next call to any Reader method.
type Match interface {
	Match(candidate string) bool
}

// MatchFunc adapts a plain function to Match.
type MatchFunc func(candidate string) bool

func (f MatchFunc) Match(candidate string) bool { return f(candidate) }
