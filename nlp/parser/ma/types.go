package ma

import . "yu-val-weiss/tbeval/nlp/types"

// MorphologicalAnalyzer returns every candidate analysis of a surface
// form, possibly none. Errors are failures of the analyzer itself, not
// unknown words.
type MorphologicalAnalyzer interface {
	Analyze(surface string) (*WordAnalysis, error)
}

type AnalyzerFunc func(surface string) (*WordAnalysis, error)

func (f AnalyzerFunc) Analyze(surface string) (*WordAnalysis, error) {
	return f(surface)
}
