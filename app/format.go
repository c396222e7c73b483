package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"yu-val-weiss/tbeval/nlp/format/treebank"
	"yu-val-weiss/tbeval/nlp/parser/ma"

	"github.com/gonuts/commander"
	"golang.org/x/text/unicode/norm"
)

// FormatWords writes every analysis of every word in treebank notation,
// one per line. Words without analyses are reported as unparsable.
func FormatWords(w io.Writer, analyzer ma.MorphologicalAnalyzer, formatter *treebank.Formatter, words []string, groups bool) error {
	for _, word := range words {
		analysis, err := analyzer.Analyze(word)
		if err != nil {
			return err
		}
		if analysis.Len() == 0 {
			if _, err := fmt.Fprintf(w, "%s\t<unparsable>\n", word); err != nil {
				return err
			}
			continue
		}
		for _, a := range analysis.Analyses {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", word, formatter.Format(a)); err != nil {
				return err
			}
			if !groups {
				continue
			}
			rendered := make([]string, 0, 4)
			for _, g := range formatter.Groups(a) {
				rendered = append(rendered, strings.Join(g, "+"))
			}
			if _, err := fmt.Fprintf(w, "\t%s\n\t%s\n", a, strings.Join(rendered, " | ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func Format(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"dict"}); err != nil {
		return err
	}
	if len(args) == 0 {
		cmd.Usage()
		return errors.New("no words to format")
	}
	tables, err := LoadTables()
	if err != nil {
		return err
	}
	formatter, err := treebank.NewFromConf(AddIndices, tables)
	if err != nil {
		return err
	}
	dict, err := LoadDict()
	if err != nil {
		return err
	}
	words := args
	if UseNFC {
		words = make([]string, len(args))
		for i, word := range args {
			words[i] = norm.NFC.String(word)
		}
	}
	return FormatWords(os.Stdout, dict, formatter, words, ShowGroups)
}

func FormatCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Format,
		UsageLine: "format <file options> word [word ...]",
		Short:     "print the treebank notation of every analysis of the given words",
		Long: `
print the treebank notation of every analysis of the given words

	$ ./tbeval format -dict <dictionary file> [options] word [word ...]

`,
		Flag: *flag.NewFlagSet("format", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&DictFile, "dict", "", "Analysis dictionary (.yaml or compiled .msgpack)")
	cmd.Flag.StringVar(&TablesFile, "tables", "", "Replacement and skip tables (YAML); built-in if unset")
	cmd.Flag.BoolVar(&AddIndices, "indices", true, "Prefix groups with their 1-based index")
	cmd.Flag.BoolVar(&ShowGroups, "groups", false, "Also print the lexical form and the raw groups")
	cmd.Flag.BoolVar(&UseNFC, "nfc", false, "Normalize the words to Unicode NFC")
	return cmd
}
