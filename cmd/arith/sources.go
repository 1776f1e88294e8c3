package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// source is one unit of input: a file's whole content or an -e expression.
type source struct {
	name string
	text string
}

// collectSources returns the -e expressions first, then the files in order.
func collectSources(expressions, files []string) ([]source, error) {
	if len(expressions) == 0 && len(files) == 0 {
		return nil, errors.New("a source file or --expression is required")
	}
	sources := make([]source, 0, len(expressions)+len(files))
	for _, expr := range expressions {
		sources = append(sources, source{name: "<expression>", text: expr})
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		sources = append(sources, source{name: path, text: string(data)})
	}
	return sources, nil
}

func addExpressionFlag(flags *pflag.FlagSet, target *[]string, verb string) {
	flags.StringArrayVarP(target, "expression", "e", nil, verb+" `source` instead of reading a file (repeatable)")
}
