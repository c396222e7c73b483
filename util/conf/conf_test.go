package conf

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c != Default() {
		t.Error("Expected Default to return the same tables on every call")
	}
	if len(c.Formatter.Rules) != 67 {
		t.Errorf("Expected 67 formatter rules, got %d", len(c.Formatter.Rules))
	}
	if len(c.Corpus.Rules) != 10 {
		t.Errorf("Expected 10 corpus rules, got %d", len(c.Corpus.Rules))
	}
	if c.Corpus.Sentinel != "#END#OF#SENTENCE#" {
		t.Errorf("Unexpected sentinel %q", c.Corpus.Sentinel)
	}
	if len(c.Formatter.SecondaryPOSSkip) != 1 || c.Formatter.SecondaryPOSSkip[0] != (POSPair{"Adv", "Time"}) {
		t.Errorf("Expected only (Adv, Time) to be skipped, got %v", c.Formatter.SecondaryPOSSkip)
	}
	first := c.Formatter.Rules[0]
	if first.From != `+Noun+Time+A3sg"` || first.To != `+Noun+Time+A3sg+Pnon+Nom"` {
		t.Errorf("Unexpected first rule %+v", first)
	}
	last := c.Formatter.Rules[len(c.Formatter.Rules)-1]
	if last.From != "+AfterDoing" || last.To != "+AfterDoingSo" {
		t.Errorf("Unexpected last rule %+v", last)
	}
	for _, s := range []string{"ise", "var", "on'da", ",bir", "akşam"} {
		if !contains(c.Skip.Surfaces, s) {
			t.Errorf("Expected surface skip list to contain %q", s)
		}
	}
	for _, s := range []string{"+Num+Card", `(1,"toplumsal+Adj")`, "_", "parasal"} {
		if !contains(c.Skip.ExpectedResults, s) {
			t.Errorf("Expected result skip list to contain %q", s)
		}
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func TestApplyOrder(t *testing.T) {
	rules := []Replacement{
		{"ab", "x"},
		{"xc", "y"},
	}
	if got := Apply(rules, "abc abc"); got != "y y" {
		t.Errorf("Expected later rules to see earlier output, got %q", got)
	}
	reversed := []Replacement{rules[1], rules[0]}
	if got := Apply(reversed, "abc"); got != "xc" {
		t.Errorf("Expected order to matter, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	input := `
formatter:
  secondary_pos_skip:
    - {primary: Adverbial, secondary: Time}
  rules:
    - {from: '', to: 'x'}
corpus:
  sentinel: ''
skip:
  surfaces: [a, b, a]
  expected_results: ['']
`
	_, err := Read(strings.NewReader(input))
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	msg := err.Error()
	for _, part := range []string{
		`unknown primary POS "Adverbial"`,
		"formatter.rules[0]: empty from",
		"corpus.sentinel: empty",
		`skip.surfaces[2]: "a" duplicates entry 0`,
		"skip.expected_results[0]: empty entry",
	} {
		if !strings.Contains(msg, part) {
			t.Errorf("Expected error to mention %q, got:\n%s", part, msg)
		}
	}
}

func TestReadUnknownField(t *testing.T) {
	_, err := Read(strings.NewReader("formatter:\n  rulez: []\n"))
	if err == nil {
		t.Error("Expected unknown field to be rejected")
	}
}

func TestSelfExtending(t *testing.T) {
	c := Default()
	formatter := SelfExtending(c.Formatter.Rules)
	if len(formatter) != 1 || formatter[0].From != "+AfterDoing" {
		t.Errorf("Expected only +AfterDoing to be self extending, got %v", formatter)
	}
	corpus := SelfExtending(c.Corpus.Rules)
	if len(corpus) != 1 || corpus[0].From != "Hastily" {
		t.Errorf("Expected only Hastily to be self extending, got %v", corpus)
	}
}
