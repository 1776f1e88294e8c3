package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"arith/interpreter-go/pkg/ast"
	"arith/interpreter-go/pkg/interpreter"
)

func (a *app) traceCommand() *cobra.Command {
	var expressions []string
	cmd := &cobra.Command{
		Use:   "trace [file...]",
		Short: "Print every reduction step of each term",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := collectSources(expressions, args)
			if err != nil {
				return err
			}
			first := true
			for _, src := range sources {
				terms, err := interpreter.ParseSource(src.text)
				if err != nil {
					fmt.Fprintf(a.stderr, "Error: %s\n", err)
					return &exitCodeError{code: 1}
				}
				for _, t := range terms {
					if !first {
						fmt.Fprintln(a.stdout)
					}
					first = false
					writeTrace(a.stdout, interpreter.Trace(t))
				}
			}
			return nil
		},
	}
	addExpressionFlag(cmd.Flags(), &expressions, "trace")
	return cmd
}

// writeTrace prints the starting term, then one "-> " line per step.
func writeTrace(w io.Writer, generations []ast.Term) {
	for i, t := range generations {
		if i == 0 {
			fmt.Fprintln(w, t.String())
			continue
		}
		fmt.Fprintf(w, "-> %s\n", t)
	}
}
