// Package main provides the graphstate command line tool.
//
// graphstate compares YAML or JSON documents with the object graph engine:
//   - diff prints the difference tree of two documents
//   - equal reports whether two documents are equal
//   - settings check validates a settings file
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status: 0 on success,
// 1 when documents differ or a settings file is invalid, 2 on error.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferent), errors.Is(err, errInvalidSettings):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}
