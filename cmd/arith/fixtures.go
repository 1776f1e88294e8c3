package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arith/interpreter-go/pkg/driver"
	"arith/interpreter-go/pkg/interpreter"
)

const defaultFixtureDir = "fixtures"

func (a *app) testCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test [dir...]",
		Short: "Run YAML fixture suites against the interpreter",
		Long: `Run YAML fixture suites against the interpreter.

Suites come from the directories given on the command line and from every
fixture source in the config file; git sources are cloned into
$ARITH_HOME/fixtures. With neither, ./fixtures is used.`,
		RunE: a.runTests,
	}
}

func (a *app) runTests(cmd *cobra.Command, args []string) error {
	dirs, err := a.fixtureDirs(args)
	if err != nil {
		return err
	}

	var suites []*driver.FixtureSuite
	for _, dir := range dirs {
		loaded, err := driver.LoadFixtureDir(dir)
		if err != nil {
			return err
		}
		suites = append(suites, loaded...)
	}
	if len(suites) == 0 {
		return errors.Errorf("no fixture suites found in %v", dirs)
	}

	report := driver.RunFixtures(suites, interpreter.Evaluate, a.log)
	for _, failure := range report.Failures {
		fmt.Fprintf(a.stdout, "FAIL %s\n", failure.Error())
	}
	fmt.Fprintf(a.stdout, "%d suites, %d passed, %d failed\n", report.Suites, report.Passed, len(report.Failures))
	if len(report.Failures) > 0 {
		return &exitCodeError{code: 1}
	}
	return nil
}

// fixtureDirs resolves command-line directories plus the config's sources.
func (a *app) fixtureDirs(args []string) ([]string, error) {
	dirs := append([]string(nil), args...)

	if len(a.config.Fixtures) > 0 {
		var fetcher *driver.GitFetcher
		if lo.SomeBy(a.config.Fixtures, driver.FixtureSource.IsGit) {
			home, err := driver.ResolveHome()
			if err != nil {
				return nil, err
			}
			fetcher = driver.NewGitFetcher(driver.FixtureCacheDir(home), a.log)
		}
		checkouts, err := driver.ResolveFixtureSources(a.config.Fixtures, fetcher)
		if err != nil {
			return nil, err
		}
		for _, checkout := range checkouts {
			a.log.WithFields(logrus.Fields{
				"source":  checkout.Name,
				"version": checkout.Version,
			}).Debug("fixture source ready")
			dirs = append(dirs, checkout.Dir)
		}
	}

	if len(dirs) == 0 {
		wd, err := a.dir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(wd, defaultFixtureDir)
		if _, err := os.Stat(dir); err != nil {
			return nil, errors.Wrap(err, "no fixture directories given")
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}
