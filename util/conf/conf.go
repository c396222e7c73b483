// Package conf holds the static rule tables and skip lists shared by the
// treebank formatter, the simple parse set reader and the evaluator.
package conf

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	nlp "yu-val-weiss/tbeval/nlp/types"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"
)

//go:embed tables.yaml
var defaultTables []byte

// Replacement is a literal substring substitution; every occurrence of
// From is replaced by To.
type Replacement struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

func (r Replacement) Apply(s string) string {
	return strings.ReplaceAll(s, r.From, r.To)
}

// Apply runs the rules in order, each over the result of the previous one.
func Apply(rules []Replacement, s string) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

type POSPair struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

type Formatter struct {
	SecondaryPOSSkip []POSPair    `yaml:"secondary_pos_skip" json:"secondary_pos_skip"`
	Rules            []Replacement `yaml:"rules" json:"rules"`
}

type Corpus struct {
	Sentinel string        `yaml:"sentinel" json:"sentinel"`
	Rules    []Replacement `yaml:"rules" json:"rules"`
}

type Skip struct {
	Surfaces        []string `yaml:"surfaces" json:"surfaces"`
	ExpectedResults []string `yaml:"expected_results" json:"expected_results"`
}

type Conf struct {
	Formatter Formatter `yaml:"formatter" json:"formatter"`
	Corpus    Corpus    `yaml:"corpus" json:"corpus"`
	Skip      Skip      `yaml:"skip" json:"skip"`
}

func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

func parse(data []byte) (*Conf, error) {
	c := new(Conf)
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultConf *Conf
)

// Default returns the embedded tables. They are parsed once and must be
// treated as read-only.
func Default() *Conf {
	defaultOnce.Do(func() {
		c, err := parse(defaultTables)
		if err != nil {
			panic(fmt.Sprintf("embedded tables are invalid - %v", err))
		}
		defaultConf = c
	})
	return defaultConf
}

// Validate reports every problem in the tables at once.
func (c *Conf) Validate() error {
	var result *multierror.Error
	for i, pair := range c.Formatter.SecondaryPOSSkip {
		if _, ok := nlp.ParsePrimaryPos(pair.Primary); !ok {
			result = multierror.Append(result, fmt.Errorf("formatter.secondary_pos_skip[%d]: unknown primary POS %q", i, pair.Primary))
		}
		if _, ok := nlp.ParseSecondaryPos(pair.Secondary); !ok {
			result = multierror.Append(result, fmt.Errorf("formatter.secondary_pos_skip[%d]: unknown secondary POS %q", i, pair.Secondary))
		}
	}
	result = checkRules(result, "formatter.rules", c.Formatter.Rules)
	result = checkRules(result, "corpus.rules", c.Corpus.Rules)
	if len(c.Corpus.Sentinel) == 0 {
		result = multierror.Append(result, fmt.Errorf("corpus.sentinel: empty"))
	}
	result = checkSet(result, "skip.surfaces", c.Skip.Surfaces)
	result = checkSet(result, "skip.expected_results", c.Skip.ExpectedResults)
	return result.ErrorOrNil()
}

func checkRules(result *multierror.Error, name string, rules []Replacement) *multierror.Error {
	for i, r := range rules {
		if len(r.From) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s[%d]: empty from", name, i))
		}
	}
	return result
}

func checkSet(result *multierror.Error, name string, values []string) *multierror.Error {
	seen := make(map[string]int, len(values))
	for i, v := range values {
		if len(v) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s[%d]: empty entry", name, i))
			continue
		}
		if first, exists := seen[v]; exists {
			result = multierror.Append(result, fmt.Errorf("%s[%d]: %q duplicates entry %d", name, i, v, first))
			continue
		}
		seen[v] = i
	}
	return result
}

// SelfExtending lists the rules whose replacement contains the text they
// replace. Such rules fire again on a second pass over their own output.
func SelfExtending(rules []Replacement) []Replacement {
	var retval []Replacement
	for _, r := range rules {
		if strings.Contains(r.To, r.From) {
			retval = append(retval, r)
		}
	}
	return retval
}
