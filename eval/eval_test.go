package eval

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"yu-val-weiss/tbeval/nlp/format/simpleparse"
	"yu-val-weiss/tbeval/nlp/format/treebank"
	"yu-val-weiss/tbeval/nlp/parser/disambig"
	"yu-val-weiss/tbeval/nlp/parser/ma"
	nlp "yu-val-weiss/tbeval/nlp/types"

	"github.com/fatih/color"
)

type candidate struct {
	root      string
	primary   nlp.PrimaryPos
	secondary nlp.SecondaryPos
	morphemes []string
}

var lexicon = map[string][]candidate{
	"evde": {{"ev", nlp.Noun, "", []string{"Noun", "A3sg", "Loc"}}},
	"dedi": {{"de", nlp.Verb, "", []string{"Verb", "Pos", "Past", "A3sg"}}},
	"ben": {
		{"ben", nlp.Pronoun, nlp.PersonalPron, []string{"Pron", "A1sg"}},
		{"ben", nlp.Noun, "", []string{"Noun", "A3sg"}},
	},
	"olan": {
		{"ol", nlp.Verb, "", []string{"Verb", "PresPart", "Adj"}},
		{"olan", nlp.Noun, "", []string{"Noun", "A3sg"}},
	},
}

func testAnalyzer(t *testing.T) ma.MorphologicalAnalyzer {
	return ma.AnalyzerFunc(func(surface string) (*nlp.WordAnalysis, error) {
		w := &nlp.WordAnalysis{Input: surface}
		for _, c := range lexicon[surface] {
			item := &nlp.DictionaryItem{Root: c.root, PrimaryPos: c.primary, SecondaryPos: c.secondary}
			a, err := nlp.NewSingleAnalysis(item, c.morphemes...)
			if err != nil {
				t.Fatalf("%s: %v", surface, err)
			}
			w.Analyses = append(w.Analyses, a)
		}
		return w, nil
	})
}

const corpus = `ise=(1,"ise+Conj")
70=(1,"70+Num+Card")
evde=(1,"ev+Noun+A3sg+Pnon+Loc")
#END#OF#SENTENCE#
xyz=(1,"xyz+Noun")
dedi=(1,"de+Verb+Neg+Past+A3sg")
ben=(1,"ben+Pron+Pers+A1sg+Pnon+Dat")
dedi=(1,"de+Verb+Neg+Past+A3sg")
olan=(1,"olan+Noun+A3sg+Pnon+Nom")
`

const (
	dediIncorrect = `dedi ----> (1,"de+Verb+Neg+Past+A3sg") ----> [(1,"de+Verb+Pos+Past+A3sg")]`
	benIncorrect  = `ben ----> (1,"ben+Pron+Pers+A1sg+Pnon+Dat") ----> [(1,"ben+Pron+Pers+A1sg+Pnon+Nom"), (1,"ben+Noun+A3sg+Pnon+Nom")]`
	xyzUnparsable = "xyz\t(1,\"xyz+Noun\")"
)

func testPairs(t *testing.T) []simpleparse.Pair {
	pairs, err := simpleparse.Parse(corpus)
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	return pairs
}

func newTestEvaluator(t *testing.T) *Evaluator {
	return &Evaluator{
		Analyzer:  testAnalyzer(t),
		Formatter: treebank.New(true),
		Policy:    DefaultSkipPolicy(),
	}
}

func TestEvaluate(t *testing.T) {
	e := newTestEvaluator(t)
	progress := 0
	e.Progress = func() { progress++ }
	report, err := e.Evaluate(testPairs(t))
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if report.Total != 8 || progress != 8 {
		t.Errorf("Expected 8 pairs judged, got %d (progress %d)", report.Total, progress)
	}
	if report.SkippedSurfaces != 1 {
		t.Errorf("Expected ise to be skipped, got %d skipped surfaces", report.SkippedSurfaces)
	}
	if report.SkippedExpectedResults != 1 {
		t.Errorf("Expected 70+Num+Card to be skipped, got %d", report.SkippedExpectedResults)
	}
	if report.Unparsable != 1 || report.UnparsableSurfaces.Count(xyzUnparsable) != 1 {
		t.Errorf("Unexpected unparsable entries %v", report.UnparsableSurfaces.Entries())
	}
	if report.Incorrect != 3 {
		t.Errorf("Expected 3 incorrect, got %d", report.Incorrect)
	}
	if report.Correct() != 2 {
		t.Errorf("Expected 2 correct, got %d", report.Correct())
	}
	if acc := report.Accuracy(); acc != 25 {
		t.Errorf("Expected accuracy 25, got %v", acc)
	}
	if !report.Consistent() {
		t.Errorf("Expected consistent report %+v", report)
	}

	entries := report.IncorrectParses.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 distinct incorrect entries, got %v", entries)
	}
	if entries[0] != (Entry{dediIncorrect, 2}) {
		t.Errorf("Expected repeated dedi entry first, got %v", entries[0])
	}
	if entries[1] != (Entry{benIncorrect, 1}) {
		t.Errorf("Unexpected second entry %v", entries[1])
	}
	if repeated := report.IncorrectParses.Repeated(); len(repeated) != 1 {
		t.Errorf("Expected one repeated entry, got %v", repeated)
	}
}

func TestEvaluateParallel(t *testing.T) {
	pairs := testPairs(t)
	for i := 0; i < 5; i++ {
		pairs = append(pairs, pairs...)
	}
	sequential, err := newTestEvaluator(t).Evaluate(pairs)
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEvaluator(t)
	e.Workers = 4
	var traced []simpleparse.Pair
	e.Trace = func(p simpleparse.Pair, _ Judgement) { traced = append(traced, p) }
	parallel, err := e.Evaluate(pairs)
	if err != nil {
		t.Fatal(err)
	}
	if parallel.Total != sequential.Total || parallel.Correct() != sequential.Correct() {
		t.Errorf("Expected equal reports, got %+v and %+v", parallel, sequential)
	}
	for i, e := range sequential.IncorrectParses.Entries() {
		if parallel.IncorrectParses.Entries()[i] != e {
			t.Errorf("Entry %d differs: %v", i, parallel.IncorrectParses.Entries()[i])
		}
	}
	for i := range pairs {
		if traced[i] != pairs[i] {
			t.Fatalf("Expected trace in corpus order, pair %d is %v", i, traced[i])
		}
	}
}

func TestEvaluateAnalyzerError(t *testing.T) {
	boom := errors.New("boom")
	for _, workers := range []int{1, 3} {
		e := &Evaluator{
			Analyzer:  ma.AnalyzerFunc(func(string) (*nlp.WordAnalysis, error) { return nil, boom }),
			Formatter: treebank.New(true),
			Workers:   workers,
		}
		if _, err := e.Evaluate(testPairs(t)); !errors.Is(err, boom) {
			t.Errorf("Expected analyzer error with %d workers, got %v", workers, err)
		}
	}
}

func TestSkippedPairsNeverReachAnalyzer(t *testing.T) {
	pairs, err := simpleparse.Parse("ise=ise+Conj\nfoo=70+Num+Card\n")
	if err != nil {
		t.Fatal(err)
	}
	e := &Evaluator{
		Analyzer: ma.AnalyzerFunc(func(s string) (*nlp.WordAnalysis, error) {
			t.Errorf("Unexpected analysis of %q", s)
			return &nlp.WordAnalysis{Input: s}, nil
		}),
		Formatter: treebank.New(true),
		Policy:    DefaultSkipPolicy(),
	}
	report, err := e.Evaluate(pairs)
	if err != nil {
		t.Fatal(err)
	}
	if report.SkippedSurfaces != 1 || report.SkippedExpectedResults != 1 || report.Correct() != 0 {
		t.Errorf("Unexpected report %+v", report)
	}
}

// rootFormatter formats a candidate as its root, so tests can choose the
// formatted text directly.
type rootFormatter struct{}

func (rootFormatter) Format(a *nlp.SingleAnalysis) string {
	return a.Item.Root
}

func TestMembershipIsExactEquality(t *testing.T) {
	const loc = `(1,"ev+Noun+A3sg+Pnon+Loc")`
	candidates := map[string][]string{
		"longer":  {loc + `(2,"Adj+Rel")`},
		"shorter": {`(1,"ev+Noun+A3sg")`},
		"case":    {strings.ToLower(loc)},
		"exact":   {strings.ToLower(loc), loc},
	}
	e := &Evaluator{
		Analyzer: ma.AnalyzerFunc(func(s string) (*nlp.WordAnalysis, error) {
			w := &nlp.WordAnalysis{Input: s}
			for _, root := range candidates[s] {
				w.Analyses = append(w.Analyses, &nlp.SingleAnalysis{Item: &nlp.DictionaryItem{Root: root}})
			}
			return w, nil
		}),
		Formatter: rootFormatter{},
	}
	expected := map[string]Outcome{
		"longer":  Incorrect,
		"shorter": Incorrect,
		"case":    Incorrect,
		"exact":   Correct,
	}
	for surface, outcome := range expected {
		j, err := e.Judge(simpleparse.Pair{Surface: surface, Expected: loc})
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		if j.Outcome != outcome {
			t.Errorf("%s: expected %v got %v", surface, outcome, j.Outcome)
		}
		if outcome == Incorrect && len(j.Candidates) != len(candidates[surface]) {
			t.Errorf("%s: expected candidates %v, got %v", surface, candidates[surface], j.Candidates)
		}
	}
}

func TestEvaluateNilPolicy(t *testing.T) {
	e := newTestEvaluator(t)
	e.Policy = nil
	report, err := e.Evaluate(testPairs(t))
	if err != nil {
		t.Fatal(err)
	}
	if report.SkippedSurfaces != 0 || report.SkippedExpectedResults != 0 || report.Unparsable != 3 {
		t.Errorf("Expected nothing skipped, got %+v", report)
	}
}

func TestTopCandidate(t *testing.T) {
	e := newTestEvaluator(t)
	e.Selector = disambig.FirstCandidate{}
	report, err := e.Evaluate(testPairs(t))
	if err != nil {
		t.Fatal(err)
	}
	// evde is correct on the first candidate, olan only on the second.
	if !report.TopMeasured || report.TopCandidateCorrect != 1 {
		t.Errorf("Expected 1 top candidate correct, got %d", report.TopCandidateCorrect)
	}
}

func TestEmptyReport(t *testing.T) {
	report := NewReport(false)
	if report.Accuracy() != 0 || report.Correct() != 0 || !report.Consistent() {
		t.Errorf("Unexpected empty report %+v", report)
	}
}

func TestSkipPolicy(t *testing.T) {
	p := DefaultSkipPolicy()
	if !p.SkipSurface("ise") || p.SkipSurface("evde") {
		t.Error("Unexpected surface policy")
	}
	if !p.SkipExpected(`(1,"toplumsal+Adj")`) || !p.SkipExpected(`(1,"on+Num+Card")`) {
		t.Error("Expected fragments to be skipped")
	}
	if p.SkipExpected(`(1,"ev+Noun+A3sg+Pnon+Loc")`) {
		t.Error("Unexpected skip")
	}
	var none *SkipPolicy
	if none.SkipSurface("ise") || none.SkipExpected("_") {
		t.Error("Expected nil policy to skip nothing")
	}
}

func TestFrequency(t *testing.T) {
	var f Frequency
	for _, s := range []string{"b", "a", "c", "b", "c"} {
		f.Add(s)
	}
	f.AddN("z", 0)
	expected := []Entry{{"b", 2}, {"c", 2}, {"a", 1}}
	entries := f.Entries()
	if len(entries) != len(expected) {
		t.Fatalf("Expected %v got %v", expected, entries)
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("Expected %v at %d got %v", expected[i], i, entries[i])
		}
	}
	if f.Len() != 3 || f.Size() != 5 || len(f.Repeated()) != 2 {
		t.Errorf("Unexpected sizes %d %d %d", f.Len(), f.Size(), len(f.Repeated()))
	}
	other := NewFrequency()
	other.AddN("a", 3)
	f.Merge(other)
	if f.Entries()[0] != (Entry{"a", 4}) {
		t.Errorf("Expected merged a first, got %v", f.Entries()[0])
	}
}

func TestReportWrite(t *testing.T) {
	color.NoColor = true
	report, err := newTestEvaluator(t).Evaluate(testPairs(t))
	if err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := report.Write(buf, WriteOptions{RepeatedOnly: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, part := range []string{
		"Surface count             :\t\t8\n",
		"Correct parse %           :\t\t25\n",
		"=====Incorrect parsed surfaces with occurrence count > 1=====\n" + dediIncorrect + "\t\t\t2\n=====Unparsable surfaces\n",
		xyzUnparsable + "\t\t\t1\n",
	} {
		if !strings.Contains(out, part) {
			t.Errorf("Expected output to contain %q, got\n%s", part, out)
		}
	}
	if strings.Contains(out, benIncorrect) {
		t.Error("Expected single occurrences to be left out")
	}
}

func TestReportJSON(t *testing.T) {
	report, err := newTestEvaluator(t).Evaluate(testPairs(t))
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	if s.Correct != 2 || s.Accuracy != 25 || len(s.IncorrectParses) != 2 || s.TopCandidateCorrect != nil {
		t.Errorf("Unexpected summary %+v", s)
	}
}
