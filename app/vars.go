package app

import (
	"fmt"
	"log"
	"os"

	"yu-val-weiss/tbeval/nlp/parser/ma"
	"yu-val-weiss/tbeval/util/conf"

	"github.com/gonuts/commander"
)

var (
	// input files
	DictFile   string
	TablesFile string
	inFile     string

	// output files
	outFile  string
	jsonFile string
	dumpFile string

	// processing options
	Workers      int
	RepeatedOnly bool = true
	UseNFC       bool
	AddIndices   bool = true
	ShowGroups   bool
	ShowTables   bool
	Verbose      bool
	SelectorName string
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil && os.IsNotExist(err) {
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			log.Printf("Required flag %s not set", name)
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}

// LoadTables returns the tables named by -tables, or the built-in ones.
func LoadTables() (*conf.Conf, error) {
	if TablesFile == "" {
		return conf.Default(), nil
	}
	if !VerifyExists(TablesFile) {
		return nil, fmt.Errorf("tables file %s not found", TablesFile)
	}
	c, err := conf.ReadFile(TablesFile)
	if err != nil {
		return nil, fmt.Errorf("failed reading tables: %w", err)
	}
	return c, nil
}

// LoadDict reads the dictionary named by -dict.
func LoadDict() (*ma.Dict, error) {
	if !VerifyExists(DictFile) {
		return nil, fmt.Errorf("dictionary file %s not found", DictFile)
	}
	log.Println("Reading dictionary")
	dict, err := ma.LoadDict(DictFile)
	if err != nil {
		return nil, fmt.Errorf("failed reading dictionary: %w", err)
	}
	log.Println("Read", len(dict.Entries), "surface forms")
	return dict, nil
}

func AllCommands() *commander.Command {
	return &commander.Command{
		UsageLine: "app",
		Short:     "treebank formatting and evaluation commands",
		Subcommands: []*commander.Command{
			EvalCmd(),
			FormatCmd(),
			CompileCmd(),
			TablesCmd(),
		},
	}
}
