// Package treebank renders analyses in the bracketed derivation-group
// notation of the Sabanci/METU treebank, e.g.
//
//	(1,"tara+Verb")(2,"Verb+Pass+Pos+Narr+A3sg")
package treebank

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	nlp "yu-val-weiss/tbeval/nlp/types"
	"yu-val-weiss/tbeval/util/conf"
)

type posPair struct {
	primary   nlp.PrimaryPos
	secondary nlp.SecondaryPos
}

// Formatter implements nlp.AnalysisFormatter. It is safe for concurrent
// use; its tables are never modified after construction.
type Formatter struct {
	AddIndices bool

	skipSecondary map[posPair]bool
	rules         []conf.Replacement
}

var _ nlp.AnalysisFormatter = (*Formatter)(nil)

// New returns a formatter over the default tables.
func New(addIndices bool) *Formatter {
	f, err := NewFromConf(addIndices, conf.Default())
	if err != nil {
		panic(err)
	}
	return f
}

func NewFromConf(addIndices bool, c *conf.Conf) (*Formatter, error) {
	f := &Formatter{
		AddIndices:    addIndices,
		skipSecondary: make(map[posPair]bool, len(c.Formatter.SecondaryPOSSkip)),
		rules:         c.Formatter.Rules,
	}
	for _, pair := range c.Formatter.SecondaryPOSSkip {
		primary, ok := nlp.ParsePrimaryPos(pair.Primary)
		if !ok {
			return nil, fmt.Errorf("unknown primary POS %q", pair.Primary)
		}
		secondary, ok := nlp.ParseSecondaryPos(pair.Secondary)
		if !ok {
			return nil, fmt.Errorf("unknown secondary POS %q", pair.Secondary)
		}
		f.skipSecondary[posPair{primary, secondary}] = true
	}
	return f, nil
}

func (f *Formatter) Format(a *nlp.SingleAnalysis) string {
	return f.Normalize(Render(f.Groups(a), f.AddIndices))
}

// Lexeme joins root, primary POS and, unless it is None or excluded for
// this primary POS, the secondary POS.
func (f *Formatter) Lexeme(item *nlp.DictionaryItem) string {
	parts := []string{item.Root, item.PrimaryPos.String()}
	if !item.SecondaryPos.IsNone() && !f.skipSecondary[posPair{item.PrimaryPos, item.SecondaryPos}] {
		parts = append(parts, item.SecondaryPos.String())
	}
	return strings.Join(parts, "+")
}

// Groups splits the analysis into derivation groups. The first group
// starts with the lexeme. A derivational morpheme closes the current group
// and opens one seeded with the POS of the following application, which is
// consumed; the derivational id follows the seed.
func (f *Formatter) Groups(a *nlp.SingleAnalysis) [][]string {
	groups := make([][]string, 0, 2)
	current := []string{f.Lexeme(a.Item)}
	apps := a.Morphemes
	for i := 1; i < len(apps); i++ {
		m := apps[i].Morpheme
		if m.Derivational {
			groups = append(groups, current)
			seed := ""
			if i+1 < len(apps) {
				seed = apps[i+1].Morpheme.Pos.String()
				i++
			}
			current = []string{seed}
		}
		current = append(current, m.ID)
	}
	return append(groups, current)
}

// Render wraps each '+'-joined group as ("...") or (N,"...").
func Render(groups [][]string, addIndices bool) string {
	var sb strings.Builder
	for i, group := range groups {
		sb.WriteString("(")
		if addIndices {
			sb.WriteString(strconv.Itoa(i + 1))
			sb.WriteString(",")
		}
		sb.WriteString(`"`)
		sb.WriteString(strings.Join(group, "+"))
		sb.WriteString(`")`)
	}
	return sb.String()
}

// Normalize applies the substitution table in order.
func (f *Formatter) Normalize(s string) string {
	return conf.Apply(f.rules, s)
}

// Format renders a with the default tables.
func Format(a *nlp.SingleAnalysis, addIndices bool) string {
	if addIndices {
		return indexed().Format(a)
	}
	return plain().Format(a)
}

var (
	indexed = sync.OnceValue(func() *Formatter { return New(true) })
	plain   = sync.OnceValue(func() *Formatter { return New(false) })
)
