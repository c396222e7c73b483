//go:build !appengine
// +build !appengine

package main

import (
	"context"

	"github.com/gonuts/commander"

	"fmt"
	"os"
	"yu-val-weiss/tbeval/app"
	"yu-val-weiss/tbeval/webapi"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " eval|format|compile|tables|api",
	Short:     "format analyses in treebank notation and evaluate them against a gold set",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
