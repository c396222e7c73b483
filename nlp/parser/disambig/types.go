package disambig

import (
	. "yu-val-weiss/tbeval/nlp/types"
)

// MorphologicalDisambiguator picks one analysis out of a word's candidates.
type MorphologicalDisambiguator interface {
	Disambiguate(*WordAnalysis) (*SingleAnalysis, bool)
}

// FirstCandidate trusts the analyzer's ranking.
type FirstCandidate struct{}

func (FirstCandidate) Disambiguate(w *WordAnalysis) (*SingleAnalysis, bool) {
	if w.Len() == 0 {
		return nil, false
	}
	return w.Analyses[0], true
}

// Fewest prefers the candidate with the fewest derivation boundaries,
// breaking ties by analyzer order.
type Fewest struct{}

func (Fewest) Disambiguate(w *WordAnalysis) (*SingleAnalysis, bool) {
	if w.Len() == 0 {
		return nil, false
	}
	var (
		best      *SingleAnalysis
		bestCount int
	)
	for _, a := range w.Analyses {
		count := derivations(a)
		if best == nil || count < bestCount {
			best, bestCount = a, count
		}
	}
	return best, best != nil
}

func derivations(a *SingleAnalysis) int {
	n := 0
	for _, app := range a.Morphemes {
		if app.Morpheme.Derivational {
			n++
		}
	}
	return n
}

var Disambiguators = map[string]MorphologicalDisambiguator{
	"first":  FirstCandidate{},
	"fewest": Fewest{},
}

const AllDisambiguatorNames = "first, fewest"
