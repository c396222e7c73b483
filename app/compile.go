package app

import (
	"flag"
	"fmt"
	"log"

	"yu-val-weiss/tbeval/nlp/parser/ma"

	"github.com/gonuts/commander"
)

func CompileConfigOut() {
	log.Println("Configuration")
	log.Printf("Dictionary:\t\t%s", DictFile)
	log.Printf("Output:\t\t%s", outFile)
	log.Println()
}

// CompileDict validates the dictionary in source and writes it to target in
// compiled form.
func CompileDict(source, target string) (*ma.Dict, error) {
	if !ma.IsCompiled(target) {
		return nil, fmt.Errorf("output file %s must have a .msgpack or .mpk extension", target)
	}
	dict, err := ma.LoadDict(source)
	if err != nil {
		return nil, err
	}
	if err := dict.WriteFile(target); err != nil {
		return nil, fmt.Errorf("failed writing %s: %w", target, err)
	}
	return dict, nil
}

func Compile(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"dict", "out"}); err != nil {
		return err
	}
	CompileConfigOut()
	if !VerifyExists(DictFile) {
		return fmt.Errorf("dictionary file %s not found", DictFile)
	}
	dict, err := CompileDict(DictFile, outFile)
	if err != nil {
		return err
	}
	log.Println("Wrote", len(dict.Entries), "surface forms to", outFile)
	return nil
}

func CompileCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Compile,
		UsageLine: "compile <file options>",
		Short:     "validate an analysis dictionary and write it in compiled form",
		Long: `
validate an analysis dictionary and write it in compiled (msgpack) form

	$ ./tbeval compile -dict <dictionary.yaml> -out <dictionary.msgpack>

`,
		Flag: *flag.NewFlagSet("compile", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&DictFile, "dict", "", "Analysis dictionary (YAML)")
	cmd.Flag.StringVar(&outFile, "out", "", "Compiled output file (.msgpack)")
	return cmd
}
