package eval

import (
	"strings"

	"yu-val-weiss/tbeval/util/conf"
)

// SkipPolicy names the corpus entries left out of the measurement: surface
// forms whose gold annotation follows a different scheme, and expected
// analyses containing fragments the analyzer does not model. A nil policy
// skips nothing.
type SkipPolicy struct {
	surfaces map[string]bool
	expected []string
}

func NewSkipPolicy(c *conf.Conf) *SkipPolicy {
	p := &SkipPolicy{
		surfaces: make(map[string]bool, len(c.Skip.Surfaces)),
		expected: c.Skip.ExpectedResults,
	}
	for _, s := range c.Skip.Surfaces {
		p.surfaces[s] = true
	}
	return p
}

func DefaultSkipPolicy() *SkipPolicy {
	return NewSkipPolicy(conf.Default())
}

func (p *SkipPolicy) SkipSurface(surface string) bool {
	return p != nil && p.surfaces[surface]
}

// SkipExpected reports whether label equals or contains any skipped
// fragment.
func (p *SkipPolicy) SkipExpected(label string) bool {
	if p == nil {
		return false
	}
	for _, fragment := range p.expected {
		if strings.Contains(label, fragment) {
			return true
		}
	}
	return false
}
