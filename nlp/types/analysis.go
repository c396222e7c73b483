package types

import (
	"fmt"
	"strings"
)

// DictionaryItem is the lexicon entry an analysis is rooted at.
type DictionaryItem struct {
	Root         string
	PrimaryPos   PrimaryPos
	SecondaryPos SecondaryPos
}

func (d *DictionaryItem) String() string {
	if d.SecondaryPos.IsNone() {
		return fmt.Sprintf("%s:%s", d.Root, d.PrimaryPos)
	}
	return fmt.Sprintf("%s:%s,%s", d.Root, d.PrimaryPos, d.SecondaryPos)
}

// Morpheme is a suffix or feature tag. A derivational morpheme starts a
// new derivation group; Pos is the category such a group is seeded with.
type Morpheme struct {
	ID           string
	Pos          PrimaryPos
	Derivational bool
}

func (m *Morpheme) String() string {
	return m.ID
}

// MorphemeApplication is a morpheme together with the surface it produced.
type MorphemeApplication struct {
	Morpheme *Morpheme
	Surface  string
}

// SingleAnalysis is one complete parse of a surface form. Morphemes[0] is
// the application of the lexeme itself.
type SingleAnalysis struct {
	Item      *DictionaryItem
	Morphemes []MorphemeApplication
}

// NewSingleAnalysis builds an analysis from morpheme ids resolved through
// the catalog. Surfaces are left empty.
func NewSingleAnalysis(item *DictionaryItem, ids ...string) (*SingleAnalysis, error) {
	apps := make([]MorphemeApplication, len(ids))
	for i, id := range ids {
		m, exists := LookupMorpheme(id)
		if !exists {
			return nil, fmt.Errorf("unknown morpheme %q in analysis of %q", id, item.Root)
		}
		apps[i] = MorphemeApplication{Morpheme: m}
	}
	return &SingleAnalysis{Item: item, Morphemes: apps}, nil
}

// String renders the analysis in lexical notation, e.g.
// [tara:Verb] Verb|n:Pass→Verb|mış:Narr|A3sg
func (a *SingleAnalysis) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(a.Item.String())
	sb.WriteString("]")
	for i, app := range a.Morphemes {
		if i == 0 {
			sb.WriteString(" ")
		} else if !a.Morphemes[i-1].Morpheme.Derivational {
			sb.WriteString("|")
		}
		if len(app.Surface) > 0 {
			sb.WriteString(app.Surface)
			sb.WriteString(":")
		}
		sb.WriteString(app.Morpheme.ID)
		if app.Morpheme.Derivational {
			sb.WriteString("→")
		}
	}
	return sb.String()
}

// WordAnalysis holds every candidate analysis of one surface form. An
// empty WordAnalysis means the analyzer could not parse the input.
type WordAnalysis struct {
	Input    string
	Analyses []*SingleAnalysis
}

func (w *WordAnalysis) Len() int {
	if w == nil {
		return 0
	}
	return len(w.Analyses)
}

// AnalysisFormatter renders a single analysis as text.
type AnalysisFormatter interface {
	Format(*SingleAnalysis) string
}

// FormatAll formats every candidate of w, in candidate order.
func FormatAll(f AnalysisFormatter, w *WordAnalysis) []string {
	retval := make([]string, w.Len())
	for i := range retval {
		retval[i] = f.Format(w.Analyses[i])
	}
	return retval
}
