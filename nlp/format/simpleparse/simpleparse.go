package simpleparse

// Package simpleparse reads simple parse set files
// each line holds SURFACE=EXPECTED_ANALYSIS
// sentences end with a #END#OF#SENTENCE# line

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"yu-val-weiss/tbeval/util/conf"

	"golang.org/x/text/unicode/norm"
)

const maxLineLength = 1024 * 1024

var ErrMalformedLine = errors.New("malformed corpus line")

// MalformedLineError reports a non-sentinel line without a '='.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, ErrMalformedLine, e.Text)
}

func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedLine
}

// Pair is a surface form with its normalized gold analysis.
type Pair struct {
	Surface  string `json:"surface"`
	Expected string `json:"expected"`
}

// Reader parses simple parse sets. Rules are applied in order to every
// expected analysis; NFC additionally composes both fields to Unicode NFC.
type Reader struct {
	Sentinel string
	Rules    []conf.Replacement
	NFC      bool
}

// NewReader returns a reader over the corpus tables of c.
func NewReader(c *conf.Conf) *Reader {
	return &Reader{
		Sentinel: c.Corpus.Sentinel,
		Rules:    c.Corpus.Rules,
	}
}

func (r *Reader) Read(reader io.Reader) ([]Pair, error) {
	var pairs []Pair
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	var i int
	for scanner.Scan() {
		i++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == r.Sentinel {
			continue
		}
		pair, err := r.parseLine(line)
		if err != nil {
			err.Line = i
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (r *Reader) parseLine(line string) (Pair, *MalformedLineError) {
	surface, expected, found := strings.Cut(line, "=")
	if !found {
		return Pair{}, &MalformedLineError{Text: line}
	}
	if r.NFC {
		surface = norm.NFC.String(surface)
		expected = norm.NFC.String(expected)
	}
	return Pair{surface, conf.Apply(r.Rules, expected)}, nil
}

func (r *Reader) ReadFile(filename string) ([]Pair, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pairs, err := r.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return pairs, nil
}

func (r *Reader) Parse(raw string) ([]Pair, error) {
	return r.Read(strings.NewReader(raw))
}

func Read(reader io.Reader) ([]Pair, error) {
	return NewReader(conf.Default()).Read(reader)
}

func ReadFile(filename string) ([]Pair, error) {
	return NewReader(conf.Default()).ReadFile(filename)
}

func Parse(raw string) ([]Pair, error) {
	return NewReader(conf.Default()).Parse(raw)
}

func Write(writer io.Writer, pairs []Pair) error {
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(writer, "%s=%s\n", pair.Surface, pair.Expected); err != nil {
			return err
		}
	}
	return nil
}
