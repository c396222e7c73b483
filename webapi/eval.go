package webapi

import (
	"yu-val-weiss/tbeval/eval"
	"yu-val-weiss/tbeval/nlp/format/simpleparse"
)

// EvaluateCorpus parses a simple parse set and evaluates it against the
// served analyzer.
func EvaluateCorpus(input string, nfc bool) (*eval.Report, error) {
	analyzerLock.Lock()
	defer analyzerLock.Unlock()
	if analyzer == nil {
		return nil, ErrNotInitialized
	}
	reader := simpleparse.NewReader(tables)
	reader.NFC = nfc
	pairs, err := reader.Parse(input)
	if err != nil {
		return nil, err
	}
	evaluator := &eval.Evaluator{
		Analyzer:  analyzer,
		Formatter: evalFormatter,
		Policy:    policy,
	}
	return evaluator.Evaluate(pairs)
}
