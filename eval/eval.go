// Package eval measures how often a formatter reproduces the gold
// analyses of a simple parse set.
package eval

import (
	"fmt"
	"strings"

	"yu-val-weiss/tbeval/nlp/format/simpleparse"
	"yu-val-weiss/tbeval/nlp/parser/disambig"
	"yu-val-weiss/tbeval/nlp/parser/ma"
	nlp "yu-val-weiss/tbeval/nlp/types"

	"golang.org/x/sync/errgroup"
)

type Outcome int

const (
	Correct Outcome = iota
	SkippedSurface
	SkippedExpected
	Unparsable
	Incorrect
)

var outcomeNames = [...]string{"correct", "skipped surface", "skipped expected result", "unparsable", "incorrect"}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Judgement is the outcome for a single corpus pair.
type Judgement struct {
	Outcome Outcome
	// Text is the frequency report entry for Unparsable and Incorrect.
	Text string
	// Candidates holds the formatted analyses of an Incorrect pair.
	Candidates []string
	// Top is set when the selected candidate formats to the expected
	// analysis.
	Top bool
}

// Evaluator checks each pair's expected analysis against the formatted
// candidates of its surface form.
type Evaluator struct {
	Analyzer  ma.MorphologicalAnalyzer
	Formatter nlp.AnalysisFormatter
	Policy    *SkipPolicy
	// Selector, when set, also measures whether its choice alone is correct.
	Selector disambig.MorphologicalDisambiguator
	// Workers > 1 judges pairs concurrently; the report is the same as for
	// a sequential run.
	Workers int
	// Progress is called once per judged pair, possibly concurrently.
	Progress func()
	// Trace receives every judgement in corpus order.
	Trace func(simpleparse.Pair, Judgement)
}

func (e *Evaluator) Judge(pair simpleparse.Pair) (Judgement, error) {
	if e.Policy.SkipSurface(pair.Surface) {
		return Judgement{Outcome: SkippedSurface}, nil
	}
	if e.Policy.SkipExpected(pair.Expected) {
		return Judgement{Outcome: SkippedExpected}, nil
	}
	analysis, err := e.Analyzer.Analyze(pair.Surface)
	if err != nil {
		return Judgement{}, fmt.Errorf("analyzing %q: %w", pair.Surface, err)
	}
	if analysis.Len() == 0 {
		return Judgement{Outcome: Unparsable, Text: pair.Surface + "\t" + pair.Expected}, nil
	}
	j := Judgement{Outcome: Correct}
	if e.Selector != nil {
		if top, ok := e.Selector.Disambiguate(analysis); ok {
			j.Top = e.Formatter.Format(top) == pair.Expected
		}
	}
	formatted := nlp.FormatAll(e.Formatter, analysis)
	for _, candidate := range formatted {
		if candidate == pair.Expected {
			return j, nil
		}
	}
	j.Outcome = Incorrect
	j.Candidates = formatted
	j.Text = pair.Surface + " ----> " + pair.Expected + " ----> [" + strings.Join(formatted, ", ") + "]"
	return j, nil
}

func (e *Evaluator) Evaluate(pairs []simpleparse.Pair) (*Report, error) {
	judgements := make([]Judgement, len(pairs))
	if e.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(e.Workers)
		for i := range pairs {
			g.Go(func() error {
				j, err := e.Judge(pairs[i])
				if err != nil {
					return err
				}
				judgements[i] = j
				e.progress()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, pair := range pairs {
			j, err := e.Judge(pair)
			if err != nil {
				return nil, err
			}
			judgements[i] = j
			e.progress()
		}
	}

	report := NewReport(e.Selector != nil)
	for i, j := range judgements {
		if e.Trace != nil {
			e.Trace(pairs[i], j)
		}
		report.Add(j)
	}
	return report, nil
}

func (e *Evaluator) progress() {
	if e.Progress != nil {
		e.Progress()
	}
}
