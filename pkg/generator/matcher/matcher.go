// Package matcher decides whether an address satisfies a vanity pattern.
package matcher

import (
	"strings"

	"github.com/Amr-9/hexseed/pkg/generator"
)

// Matcher holds pre-folded prefix and suffix groups.
// An address matches when it has any of the prefixes and any of the
// suffixes; an empty group accepts everything.
type Matcher struct {
	prefixes      []string
	suffixes      []string
	caseSensitive bool
}

// New builds a Matcher for criteria. Patterns are lowercased up front when
// matching is case-insensitive.
func New(criteria *generator.MatchCriteria) *Matcher {
	m := &Matcher{caseSensitive: criteria.CaseSensitive}
	m.prefixes = m.fold(criteria.Prefixes)
	m.suffixes = m.fold(criteria.Suffixes)
	return m
}

func (m *Matcher) fold(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !m.caseSensitive {
			p = strings.ToLower(p)
		}
		out = append(out, p)
	}
	return out
}

// Matches tests the pattern-bearing body of addr.
func (m *Matcher) Matches(addr generator.Address) bool {
	subject := addr.Body()
	if !m.caseSensitive {
		subject = strings.ToLower(subject)
	}
	return anyOf(m.prefixes, subject, strings.HasPrefix) && anyOf(m.suffixes, subject, strings.HasSuffix)
}

func anyOf(patterns []string, subject string, test func(s, affix string) bool) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if test(subject, p) {
			return true
		}
	}
	return false
}
