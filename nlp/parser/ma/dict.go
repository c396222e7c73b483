package ma

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	nlp "yu-val-weiss/tbeval/nlp/types"

	"github.com/hashicorp/go-multierror"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"
)

const serializationVersion = 1

// Entry is one stored analysis: a dictionary item and its morphemes, each
// either an id ("A3sg") or surface:id ("mış:Narr").
type Entry struct {
	Root      string   `yaml:"root" msgpack:"root"`
	POS       string   `yaml:"pos" msgpack:"pos"`
	SPOS      string   `yaml:"spos,omitempty" msgpack:"spos,omitempty"`
	Morphemes []string `yaml:"morphemes" msgpack:"morphemes"`
}

type Serialization struct {
	Version int
	Entries map[string][]Entry
}

type AnalyzeStats struct {
	TotalTokens, OOVTokens    int
	UniqTokens, UniqOOVTokens map[string]bool
}

func (s *AnalyzeStats) Init() {
	s.UniqTokens = make(map[string]bool)
	s.UniqOOVTokens = make(map[string]bool)
}

func (s *AnalyzeStats) AddToken(token string, known bool) {
	s.TotalTokens++
	s.UniqTokens[token] = true
	if !known {
		s.OOVTokens++
		s.UniqOOVTokens[token] = true
	}
}

// Dict is a MorphologicalAnalyzer backed by precomputed analyses, keyed
// by surface form. Analyze is safe for concurrent use after Init.
type Dict struct {
	Entries map[string][]Entry
	Stats   *AnalyzeStats

	analyses map[string][]*nlp.SingleAnalysis
	lock     sync.Mutex
}

var _ MorphologicalAnalyzer = (*Dict)(nil)

// Init resolves every entry against the morpheme catalog, reporting all
// unresolvable entries together.
func (d *Dict) Init() error {
	var result *multierror.Error
	d.analyses = make(map[string][]*nlp.SingleAnalysis, len(d.Entries))
	for _, surface := range d.Surfaces() {
		entries := d.Entries[surface]
		resolved := make([]*nlp.SingleAnalysis, 0, len(entries))
		for i, entry := range entries {
			a, err := entry.Analysis()
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("%s[%d]: %w", surface, i, err))
				continue
			}
			resolved = append(resolved, a)
		}
		d.analyses[surface] = resolved
	}
	if d.Stats == nil {
		d.Stats = new(AnalyzeStats)
		d.Stats.Init()
	}
	return result.ErrorOrNil()
}

func (e Entry) Analysis() (*nlp.SingleAnalysis, error) {
	primary, ok := nlp.ParsePrimaryPos(e.POS)
	if !ok {
		return nil, fmt.Errorf("unknown primary POS %q", e.POS)
	}
	secondary, ok := nlp.ParseSecondaryPos(e.SPOS)
	if !ok {
		return nil, fmt.Errorf("unknown secondary POS %q", e.SPOS)
	}
	item := &nlp.DictionaryItem{Root: e.Root, PrimaryPos: primary, SecondaryPos: secondary}
	apps := make([]nlp.MorphemeApplication, len(e.Morphemes))
	for i, value := range e.Morphemes {
		surface, id, found := strings.Cut(value, ":")
		if !found {
			surface, id = "", value
		}
		m, exists := nlp.LookupMorpheme(id)
		if !exists {
			return nil, fmt.Errorf("unknown morpheme %q", id)
		}
		apps[i] = nlp.MorphemeApplication{Morpheme: m, Surface: surface}
	}
	return &nlp.SingleAnalysis{Item: item, Morphemes: apps}, nil
}

func (d *Dict) Analyze(surface string) (*nlp.WordAnalysis, error) {
	if d.analyses == nil {
		return nil, fmt.Errorf("dictionary analyzer used before Init")
	}
	analyses := d.analyses[surface]
	d.lock.Lock()
	d.Stats.AddToken(surface, len(analyses) > 0)
	d.lock.Unlock()
	retval := &nlp.WordAnalysis{Input: surface, Analyses: make([]*nlp.SingleAnalysis, len(analyses))}
	copy(retval.Analyses, analyses)
	return retval, nil
}

// Surfaces lists the known surface forms in sorted order.
func (d *Dict) Surfaces() []string {
	retval := make([]string, 0, len(d.Entries))
	for surface := range d.Entries {
		retval = append(retval, surface)
	}
	sort.Strings(retval)
	return retval
}

func (d *Dict) Read(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	entries := make(map[string][]Entry)
	if err := yaml.UnmarshalStrict(data, &entries); err != nil {
		return err
	}
	d.Entries = entries
	return nil
}

func (d *Dict) ReadMsgpack(reader io.Reader) error {
	data := new(Serialization)
	if err := msgpack.NewDecoder(reader).Decode(data); err != nil {
		return err
	}
	if data.Version != serializationVersion {
		return fmt.Errorf("unsupported dictionary version %d", data.Version)
	}
	d.Entries = data.Entries
	return nil
}

func (d *Dict) WriteMsgpack(writer io.Writer) error {
	return msgpack.NewEncoder(writer).Encode(&Serialization{
		Version: serializationVersion,
		Entries: d.Entries,
	})
}

// IsCompiled reports whether filename names a msgpack dictionary.
func IsCompiled(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".msgpack", ".mpk":
		return true
	}
	return false
}

// ReadFile reads a YAML or compiled dictionary, chosen by extension.
func (d *Dict) ReadFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if IsCompiled(filename) {
		err = d.ReadMsgpack(file)
	} else {
		err = d.Read(file)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

func (d *Dict) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := d.WriteMsgpack(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadDict reads and initializes a dictionary analyzer.
func LoadDict(filename string) (*Dict, error) {
	d := new(Dict)
	if err := d.ReadFile(filename); err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}
