package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arith/interpreter-go/pkg/driver"
	"arith/interpreter-go/pkg/repl"
)

const cliToolVersion = "arith 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp(os.Stdin, os.Stdout, os.Stderr).execute(ctx, args)
}

// exitCodeError carries a non-zero exit status for failures that were
// already reported to the user.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	workDir    string
	configPath string
	logLevel   string

	config *driver.Config
	log    *logrus.Logger

	openReader func(repl.Options) (repl.LineReader, error)
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		config:     driver.DefaultConfig(),
		log:        log,
		openReader: openLineReader,
	}
}

func openLineReader(opts repl.Options) (repl.LineReader, error) {
	return repl.NewLineReader(opts)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *exitCodeError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(a.stderr, "Error: %s\n", err)
	return 1
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "arith",
		Short:             "Evaluate terms of the Arith calculus",
		Long:              "Evaluate terms of the Arith calculus of booleans and natural numbers.\nWithout a subcommand an interactive REPL is started.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           cliToolVersion,
		PersistentPreRunE: a.persistentPreRunE,
		RunE:              a.runREPL,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to an arith.yml or arith.toml config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		a.replCommand(),
		a.runCommand(),
		a.parseCommand(),
		a.traceCommand(),
		a.testCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *app) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.config = cfg

	level := cfg.LogLevel
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		level = a.logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid --log-level %q", level)
	}
	a.log.SetLevel(parsed)
	a.log.WithField("config", cfg.Path).Debugf("called %s", cmd.CommandPath())
	return nil
}

func (a *app) loadConfig() (*driver.Config, error) {
	path := a.configPath
	if path == "" {
		start, err := a.dir()
		if err != nil {
			return nil, err
		}
		found, err := driver.FindConfig(start)
		switch {
		case errors.Is(err, driver.ErrConfigNotFound):
			return driver.DefaultConfig(), nil
		case err != nil:
			return nil, err
		}
		path = found
	}
	return driver.LoadConfig(path)
}

func (a *app) dir() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolve working directory")
	}
	return wd, nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the arith version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.stdout, cliToolVersion)
		},
	}
}
