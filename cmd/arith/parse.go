package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arith/interpreter-go/pkg/ast"
	"arith/interpreter-go/pkg/interpreter"
)

var dumpFormats = []string{"text", "inspect", "yaml", "json"}

func (a *app) parseCommand() *cobra.Command {
	var (
		expressions []string
		format      string
	)
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the parsed terms without evaluating them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains(dumpFormats, format) {
				return errors.Errorf("unknown --format %q (want one of %s)", format, strings.Join(dumpFormats, ", "))
			}
			sources, err := collectSources(expressions, args)
			if err != nil {
				return err
			}
			var terms []ast.Term
			for _, src := range sources {
				parsed, err := interpreter.ParseSource(src.text)
				if err != nil {
					fmt.Fprintf(a.stderr, "Error: %s\n", err)
					return &exitCodeError{code: 1}
				}
				terms = append(terms, parsed...)
			}
			return writeTerms(a.stdout, terms, format)
		},
	}
	addExpressionFlag(cmd.Flags(), &expressions, "parse")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(dumpFormats, ", "))
	return cmd
}

func writeTerms(w io.Writer, terms []ast.Term, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(lo.Map(terms, func(t ast.Term, _ int) *ast.Node { return ast.ToNode(t) })); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	case "json":
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		nodes := lo.Map(terms, func(t ast.Term, _ int) *ast.Node { return ast.ToNode(t) })
		return errors.Wrap(enc.Encode(nodes), "encode json")
	case "inspect":
		for _, t := range terms {
			fmt.Fprintln(w, ast.Inspect(t))
		}
	default:
		for _, t := range terms {
			fmt.Fprintln(w, t.String())
		}
	}
	return nil
}
