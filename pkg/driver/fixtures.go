package driver

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FixtureSuite is one YAML file of evaluation cases.
type FixtureSuite struct {
	Path        string        `yaml:"-"`
	Description string        `yaml:"description"`
	Cases       []FixtureCase `yaml:"cases"`
}

// FixtureCase pairs a source line with either its expected output or the
// expected error message.
type FixtureCase struct {
	Name   string  `yaml:"name"`
	Source string  `yaml:"source"`
	Expect *string `yaml:"expect"`
	Error  *string `yaml:"error"`
}

// EvaluateFunc is the pipeline a fixture run drives.
type EvaluateFunc func(source string) (string, error)

// FixtureFailure records a case whose outcome differed from the suite.
type FixtureFailure struct {
	Suite  string
	Case   string
	Source string
	Want   string
	Got    string
}

func (f FixtureFailure) Error() string {
	return fmt.Sprintf("%s: %s: source %q: want %s, got %s", f.Suite, f.Case, f.Source, f.Want, f.Got)
}

// FixtureReport summarises a run.
type FixtureReport struct {
	Suites   int
	Passed   int
	Failures []FixtureFailure
}

// Err aggregates every failure, or returns nil when all cases passed.
func (r *FixtureReport) Err() error {
	var result *multierror.Error
	for _, failure := range r.Failures {
		result = multierror.Append(result, failure)
	}
	return result.ErrorOrNil()
}

// LoadFixtureSuite parses and checks a single suite file.
func LoadFixtureSuite(path string) (*FixtureSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture: read %s", path)
	}
	var suite FixtureSuite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, errors.Wrapf(err, "fixture: parse %s", path)
	}
	suite.Path = path

	var problems *multierror.Error
	for i, c := range suite.Cases {
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("cases[%d]", i)
		}
		if (c.Expect == nil) == (c.Error == nil) {
			problems = multierror.Append(problems, errors.Errorf("%s: exactly one of expect or error is required", label))
		}
	}
	if err := problems.ErrorOrNil(); err != nil {
		return nil, errors.Wrapf(err, "fixture: %s", path)
	}
	return &suite, nil
}

// LoadFixtureDir loads every .yml/.yaml suite below dir in lexical order.
func LoadFixtureDir(dir string) ([]*FixtureSuite, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yml", ".yaml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fixture: scan %s", dir)
	}
	sort.Strings(paths)

	suites := make([]*FixtureSuite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadFixtureSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

// RunFixtures evaluates every case and compares it with its expectation.
func RunFixtures(suites []*FixtureSuite, eval EvaluateFunc, log logrus.FieldLogger) *FixtureReport {
	if log == nil {
		log = logrus.StandardLogger()
	}
	report := &FixtureReport{Suites: len(suites)}
	for _, suite := range suites {
		failures := lo.FilterMap(suite.Cases, func(c FixtureCase, i int) (FixtureFailure, bool) {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("cases[%d]", i)
			}
			return checkCase(suite.Path, name, c, eval)
		})
		report.Passed += len(suite.Cases) - len(failures)
		report.Failures = append(report.Failures, failures...)
		log.WithFields(logrus.Fields{
			"suite":  suite.Path,
			"cases":  len(suite.Cases),
			"failed": len(failures),
		}).Info("fixture suite finished")
	}
	return report
}

func checkCase(suite, name string, c FixtureCase, eval EvaluateFunc) (FixtureFailure, bool) {
	got, err := eval(c.Source)
	failure := FixtureFailure{Suite: suite, Case: name, Source: c.Source}
	switch {
	case c.Error != nil && err == nil:
		failure.Want = fmt.Sprintf("error %q", *c.Error)
		failure.Got = fmt.Sprintf("output %q", got)
		return failure, true
	case c.Error != nil && err.Error() != *c.Error:
		failure.Want = fmt.Sprintf("error %q", *c.Error)
		failure.Got = fmt.Sprintf("error %q", err.Error())
		return failure, true
	case c.Expect != nil && err != nil:
		failure.Want = fmt.Sprintf("output %q", *c.Expect)
		failure.Got = fmt.Sprintf("error %q", err.Error())
		return failure, true
	case c.Expect != nil && got != *c.Expect:
		failure.Want = fmt.Sprintf("output %q", *c.Expect)
		failure.Got = fmt.Sprintf("output %q", got)
		return failure, true
	}
	return FixtureFailure{}, false
}
