package app

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"yu-val-weiss/tbeval/eval"
	"yu-val-weiss/tbeval/nlp/format/simpleparse"
	"yu-val-weiss/tbeval/nlp/format/treebank"
	"yu-val-weiss/tbeval/nlp/parser/disambig"

	"github.com/gonuts/commander"
	"github.com/gosuri/uiprogress"
	"golang.org/x/term"
)

func EvalConfigOut() {
	log.Println("Configuration")
	log.Printf("Dictionary:\t\t%s", DictFile)
	if TablesFile != "" {
		log.Printf("Tables:\t\t%s", TablesFile)
	} else {
		log.Printf("Tables:\t\tbuilt-in")
	}
	log.Printf("Workers:\t\t%d", Workers)
	log.Printf("NFC:\t\t\t%v", UseNFC)
	log.Printf("Repeated only:\t%v", RepeatedOnly)
	if SelectorName != "" {
		log.Printf("Top-1 selector:\t%s", SelectorName)
	}
	log.Println()
	log.Printf("Input:\t\t%s", inFile)
	if jsonFile != "" {
		log.Printf("JSON Output:\t%s", jsonFile)
	}
	if dumpFile != "" {
		log.Printf("Pairs Output:\t%s", dumpFile)
	}
	log.Println()
}

// showProgress reports whether out, where uiprogress renders, is a terminal.
func showProgress(out *os.File) bool {
	return term.IsTerminal(int(out.Fd()))
}

func Eval(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"in", "dict"}); err != nil {
		return err
	}
	EvalConfigOut()

	var selector disambig.MorphologicalDisambiguator
	if SelectorName != "" {
		var exists bool
		if selector, exists = disambig.Disambiguators[SelectorName]; !exists {
			return fmt.Errorf("unknown selector %q, choose one of %s", SelectorName, disambig.AllDisambiguatorNames)
		}
	}
	tables, err := LoadTables()
	if err != nil {
		return err
	}
	formatter, err := treebank.NewFromConf(true, tables)
	if err != nil {
		return err
	}
	dict, err := LoadDict()
	if err != nil {
		return err
	}

	log.Println("Reading simple parse set")
	reader := simpleparse.NewReader(tables)
	reader.NFC = UseNFC
	pairs, err := reader.ReadFile(inFile)
	if err != nil {
		return err
	}
	log.Println("Read", len(pairs), "pairs")
	if dumpFile != "" {
		if err := writePairs(dumpFile, pairs); err != nil {
			return err
		}
		log.Println("Wrote", len(pairs), "normalized pairs to", dumpFile)
	}

	evaluator := &eval.Evaluator{
		Analyzer:  dict,
		Formatter: formatter,
		Policy:    eval.NewSkipPolicy(tables),
		Selector:  selector,
		Workers:   Workers,
	}
	if Verbose {
		evaluator.Trace = traceJudgement
	}
	log.Println("Evaluating")
	var bar *uiprogress.Bar
	if showProgress(os.Stdout) && !Verbose {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(pairs))
		bar.AppendCompleted()
		bar.PrependElapsed()
		evaluator.Progress = func() { bar.Incr() }
	}
	report, err := evaluator.Evaluate(pairs)
	if bar != nil {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}
	log.Println("Analyzed", dict.Stats.TotalTokens, "occurences of", len(dict.Stats.UniqTokens), "unique tokens")
	log.Println("Encountered", dict.Stats.OOVTokens, "occurences of", len(dict.Stats.UniqOOVTokens), "unknown tokens")
	if !report.Consistent() {
		return fmt.Errorf("inconsistent report: %d pairs, %d correct", report.Total, report.Correct())
	}

	opts := eval.WriteOptions{RepeatedOnly: RepeatedOnly}
	if err := report.Write(os.Stdout, opts); err != nil {
		return err
	}
	if jsonFile != "" {
		if err := writeReportJSON(jsonFile, report, opts); err != nil {
			return err
		}
		log.Println("Wrote report to", jsonFile)
	}
	return nil
}

func traceJudgement(pair simpleparse.Pair, j eval.Judgement) {
	switch j.Outcome {
	case eval.SkippedSurface:
		log.Printf("Surface '%s' is a skipped surface", pair.Surface)
	case eval.SkippedExpected:
		log.Printf("Surface with expected parse result '%s' is a skipped expected parse result", pair.Expected)
	case eval.Unparsable:
		log.Printf("Surface '%s' is not parseable", pair.Surface)
	case eval.Incorrect:
		log.Printf("Surface '%s' is parseable, but expected result '%s' is not found", pair.Surface, pair.Expected)
		log.Printf("\t%s", strings.Join(j.Candidates, "\n\t"))
	}
}

func writePairs(filename string, pairs []simpleparse.Pair) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := simpleparse.Write(file, pairs); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeReportJSON(filename string, report *eval.Report, opts eval.WriteOptions) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(file, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func EvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Eval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "measure how often the treebank formatter reproduces gold analyses",
		Long: `
measure how often the treebank formatter reproduces gold analyses

	$ ./tbeval eval -in <simple parse set> -dict <dictionary file> [options]

Every line of the input has the form surface=expected; #END#OF#SENTENCE#
lines are ignored. A pair is correct when any analysis of the surface
formats exactly to the expected analysis.

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&inFile, "in", "", "Simple parse set input file")
	cmd.Flag.StringVar(&DictFile, "dict", "", "Analysis dictionary (.yaml or compiled .msgpack)")
	cmd.Flag.StringVar(&TablesFile, "tables", "", "Replacement and skip tables (YAML); built-in if unset")
	cmd.Flag.IntVar(&Workers, "workers", 1, "Number of concurrent workers")
	cmd.Flag.BoolVar(&RepeatedOnly, "repeated", true, "Only list incorrect parses seen more than once")
	cmd.Flag.BoolVar(&UseNFC, "nfc", false, "Normalize the input to Unicode NFC")
	cmd.Flag.StringVar(&SelectorName, "top1", "", "Also measure the top candidate chosen by selector: "+disambig.AllDisambiguatorNames)
	cmd.Flag.StringVar(&jsonFile, "json", "", "Write the report as JSON to this file")
	cmd.Flag.StringVar(&dumpFile, "dump", "", "Write the normalized pairs to this file")
	cmd.Flag.BoolVar(&Verbose, "v", false, "Log the outcome of every pair that is not correct")
	return cmd
}
