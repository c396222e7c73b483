package eval

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report accumulates the counters and frequency reports of an evaluation.
type Report struct {
	Total                  int
	Unparsable             int
	Incorrect              int
	SkippedSurfaces        int
	SkippedExpectedResults int

	// TopMeasured is set when a selector was evaluated alongside the
	// candidate set.
	TopMeasured         bool
	TopCandidateCorrect int

	UnparsableSurfaces *Frequency
	IncorrectParses    *Frequency
}

func NewReport(topMeasured bool) *Report {
	return &Report{
		TopMeasured:        topMeasured,
		UnparsableSurfaces: NewFrequency(),
		IncorrectParses:    NewFrequency(),
	}
}

func (r *Report) Add(j Judgement) {
	r.Total++
	switch j.Outcome {
	case SkippedSurface:
		r.SkippedSurfaces++
	case SkippedExpected:
		r.SkippedExpectedResults++
	case Unparsable:
		r.Unparsable++
		r.UnparsableSurfaces.Add(j.Text)
	case Incorrect:
		r.Incorrect++
		r.IncorrectParses.Add(j.Text)
	}
	if j.Top {
		r.TopCandidateCorrect++
	}
}

// Correct counts the pairs that were neither skipped, unparsable nor
// incorrect.
func (r *Report) Correct() int {
	return r.Total - r.Unparsable - r.Incorrect - r.SkippedSurfaces - r.SkippedExpectedResults
}

// Accuracy is the percentage of all pairs, skipped ones included, that
// were parsed correctly. An empty report has accuracy 0.
func (r *Report) Accuracy() float64 {
	return percent(r.Correct(), r.Total)
}

func (r *Report) TopCandidateAccuracy() float64 {
	return percent(r.TopCandidateCorrect, r.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// Consistent checks that the frequency reports agree with the counters.
func (r *Report) Consistent() bool {
	return r.Correct() >= 0 &&
		r.UnparsableSurfaces.Size() == r.Unparsable &&
		r.IncorrectParses.Size() == r.Incorrect &&
		r.TopCandidateCorrect <= r.Total
}

type WriteOptions struct {
	// RepeatedOnly limits the incorrect parse listing to entries seen more
	// than once.
	RepeatedOnly bool
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

func (r *Report) Write(w io.Writer, opts WriteOptions) error {
	var err error
	line := func(c *color.Color, format string, args ...interface{}) {
		if err != nil {
			return
		}
		if c == nil {
			_, err = fmt.Fprintf(w, format+"\n", args...)
		} else {
			_, err = c.Fprintf(w, format+"\n", args...)
		}
	}
	line(heading, "========SUMMARY===========")
	line(nil, "Surface count             :\t\t%d", r.Total)
	line(bad, "Unparsable                :\t\t%d", r.Unparsable)
	line(bad, "Incorrect parses          :\t\t%d", r.Incorrect)
	line(nil, "Skipped surfaces          :\t\t%d", r.SkippedSurfaces)
	line(nil, "Skipped parse results     :\t\t%d", r.SkippedExpectedResults)
	line(good, "Correct parses            :\t\t%d", r.Correct())
	line(good, "Correct parse %%           :\t\t%v", r.Accuracy())
	if r.TopMeasured {
		line(nil, "Top candidate correct     :\t\t%d", r.TopCandidateCorrect)
		line(nil, "Top candidate %%           :\t\t%v", r.TopCandidateAccuracy())
	}

	incorrect := r.IncorrectParses.Entries()
	if opts.RepeatedOnly {
		line(heading, "=====Incorrect parsed surfaces with occurrence count > 1=====")
		incorrect = r.IncorrectParses.Repeated()
	} else {
		line(heading, "=====Incorrect parsed surfaces")
	}
	for _, e := range incorrect {
		line(nil, "%s\t\t\t%d", e.Text, e.Count)
	}
	line(heading, "=====Unparsable surfaces")
	for _, e := range r.UnparsableSurfaces.Entries() {
		line(nil, "%s\t\t\t%d", e.Text, e.Count)
	}
	return err
}

// Summary is the serialized form of a Report.
type Summary struct {
	Total                  int      `json:"total"`
	Correct                int      `json:"correct"`
	Unparsable             int      `json:"unparsable"`
	Incorrect              int      `json:"incorrect"`
	SkippedSurfaces        int      `json:"skipped_surfaces"`
	SkippedExpectedResults int      `json:"skipped_expected_results"`
	Accuracy               float64  `json:"accuracy"`
	TopCandidateCorrect    *int     `json:"top_candidate_correct,omitempty"`
	TopCandidateAccuracy   *float64 `json:"top_candidate_accuracy,omitempty"`
	IncorrectParses        []Entry  `json:"incorrect_parses"`
	UnparsableSurfaces     []Entry  `json:"unparsable_surfaces"`
}

func (r *Report) Summary(opts WriteOptions) Summary {
	s := Summary{
		Total:                  r.Total,
		Correct:                r.Correct(),
		Unparsable:             r.Unparsable,
		Incorrect:              r.Incorrect,
		SkippedSurfaces:        r.SkippedSurfaces,
		SkippedExpectedResults: r.SkippedExpectedResults,
		Accuracy:               r.Accuracy(),
		IncorrectParses:        r.IncorrectParses.Entries(),
		UnparsableSurfaces:     r.UnparsableSurfaces.Entries(),
	}
	if opts.RepeatedOnly {
		s.IncorrectParses = r.IncorrectParses.Repeated()
	}
	if r.TopMeasured {
		top, acc := r.TopCandidateCorrect, r.TopCandidateAccuracy()
		s.TopCandidateCorrect, s.TopCandidateAccuracy = &top, &acc
	}
	return s
}

func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Summary(WriteOptions{}))
}

func (r *Report) WriteJSON(w io.Writer, opts WriteOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r.Summary(opts))
}
