package app

import (
	"flag"
	"fmt"
	"io"
	"os"

	"yu-val-weiss/tbeval/util/conf"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"gopkg.in/yaml.v2"
)

var warn = color.New(color.FgYellow)

// DescribeTables writes table sizes and the rules that extend their own
// match, which make a second normalization pass change the output again.
func DescribeTables(w io.Writer, c *conf.Conf) error {
	var err error
	line := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format+"\n", args...)
		}
	}
	line("Formatter rules:\t\t%d", len(c.Formatter.Rules))
	line("Secondary POS skips:\t%d", len(c.Formatter.SecondaryPOSSkip))
	line("Corpus rules:\t\t%d", len(c.Corpus.Rules))
	line("Sentence sentinel:\t\t%s", c.Corpus.Sentinel)
	line("Skipped surfaces:\t\t%d", len(c.Skip.Surfaces))
	line("Skipped expected results:\t%d", len(c.Skip.ExpectedResults))
	for _, table := range []struct {
		name  string
		rules []conf.Replacement
	}{
		{"formatter", c.Formatter.Rules},
		{"corpus", c.Corpus.Rules},
	} {
		for _, r := range conf.SelfExtending(table.rules) {
			if err == nil {
				_, err = warn.Fprintf(w, "Self-extending %s rule:\t%q -> %q\n", table.name, r.From, r.To)
			}
		}
	}
	return err
}

func Tables(cmd *commander.Command, args []string) error {
	c, err := LoadTables()
	if err != nil {
		return err
	}
	if ShowTables {
		out, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	return DescribeTables(os.Stdout, c)
}

func TablesCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Tables,
		UsageLine: "tables [options]",
		Short:     "validate and summarize replacement and skip tables",
		Long: `
validate and summarize replacement and skip tables

	$ ./tbeval tables [-tables <tables.yaml>] [-dump]

Without -tables the built-in tables are checked.

`,
		Flag: *flag.NewFlagSet("tables", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&TablesFile, "tables", "", "Replacement and skip tables (YAML); built-in if unset")
	cmd.Flag.BoolVar(&ShowTables, "dump", false, "Print the tables as YAML")
	return cmd
}
