package webapi

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"yu-val-weiss/tbeval/app"
	"yu-val-weiss/tbeval/eval"
	"yu-val-weiss/tbeval/nlp/format/treebank"
	"yu-val-weiss/tbeval/nlp/parser/ma"
	nlp "yu-val-weiss/tbeval/nlp/types"
	"yu-val-weiss/tbeval/util/conf"
)

var (
	analyzer      ma.MorphologicalAnalyzer
	tables        *conf.Conf
	wordFormatter *treebank.Formatter
	evalFormatter *treebank.Formatter
	policy        *eval.SkipPolicy
	analyzerLock  sync.Mutex
)

var ErrNotInitialized = errors.New("analyzer not initialized")

// Initialize installs the analyzer and tables served by the API.
// addIndices applies to /format only; evaluation always compares indexed
// notation.
func Initialize(a ma.MorphologicalAnalyzer, c *conf.Conf, addIndices bool) error {
	wf, err := treebank.NewFromConf(addIndices, c)
	if err != nil {
		return err
	}
	ef, err := treebank.NewFromConf(true, c)
	if err != nil {
		return err
	}
	analyzerLock.Lock()
	defer analyzerLock.Unlock()
	analyzer, tables = a, c
	wordFormatter, evalFormatter = wf, ef
	policy = eval.NewSkipPolicy(c)
	return nil
}

// APIInitialize loads the dictionary and tables named on the command line.
func APIInitialize() {
	tables, err := app.LoadTables()
	if err != nil {
		panic(fmt.Sprintf("Failed reading tables - %v", err))
	}
	dict, err := app.LoadDict()
	if err != nil {
		panic(fmt.Sprintf("Failed reading dictionary - %v", err))
	}
	if err := Initialize(dict, tables, app.AddIndices); err != nil {
		panic(fmt.Sprintf("Failed initializing formatter - %v", err))
	}
	log.Println("Loaded", len(dict.Entries), "surface forms")
}

type WordResult struct {
	Word     string   `json:"word"`
	Analyses []string `json:"analyses"`
}

// FormatWords formats every analysis of every word. A word the analyzer
// cannot parse gets an empty list.
func FormatWords(words []string) ([]WordResult, error) {
	analyzerLock.Lock()
	defer analyzerLock.Unlock()
	if analyzer == nil {
		return nil, ErrNotInitialized
	}
	results := make([]WordResult, len(words))
	for i, word := range words {
		analysis, err := analyzer.Analyze(word)
		if err != nil {
			return nil, fmt.Errorf("analyzing %q: %w", word, err)
		}
		results[i] = WordResult{Word: word, Analyses: nlp.FormatAll(wordFormatter, analysis)}
	}
	return results, nil
}
