package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt       = "> "
	DefaultGreeting     = "\nWelcome to the Arith REPL!"
	DefaultHistoryLimit = 500
	DefaultLogLevel     = "warn"
)

// ConfigFileNames lists the file names FindConfig looks for, in order.
var ConfigFileNames = []string{"arith.yml", "arith.yaml", "arith.toml"}

// ErrConfigNotFound is returned when no config file exists up the tree.
var ErrConfigNotFound = errors.New("arith config not found")

// Config holds the REPL and tooling settings from arith.yml or arith.toml.
type Config struct {
	Path     string
	Prompt   string
	Greeting string
	History  HistoryConfig
	LogLevel string
	Fixtures []FixtureSource
}

// HistoryConfig controls the REPL's persistent input history.
type HistoryConfig struct {
	File     string
	Limit    int
	Disabled bool
}

// FixtureSource names a directory of fixture suites, either local or in git.
type FixtureSource struct {
	Name   string
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
	Dir    string
}

// IsGit reports whether the source must be fetched from a repository.
func (s FixtureSource) IsGit() bool {
	return strings.TrimSpace(s.Git) != ""
}

type configFile struct {
	Prompt   *string             `yaml:"prompt" toml:"prompt"`
	Greeting *string             `yaml:"greeting" toml:"greeting"`
	History  *historyFile        `yaml:"history" toml:"history"`
	LogLevel string              `yaml:"log_level" toml:"log_level"`
	Fixtures []fixtureSourceFile `yaml:"fixtures" toml:"fixtures"`
}

type historyFile struct {
	File     string `yaml:"file" toml:"file"`
	Limit    *int   `yaml:"limit" toml:"limit"`
	Disabled bool   `yaml:"disabled" toml:"disabled"`
}

type fixtureSourceFile struct {
	Name   string `yaml:"name" toml:"name"`
	Path   string `yaml:"path" toml:"path"`
	Git    string `yaml:"git" toml:"git"`
	Rev    string `yaml:"rev" toml:"rev"`
	Tag    string `yaml:"tag" toml:"tag"`
	Branch string `yaml:"branch" toml:"branch"`
	Dir    string `yaml:"dir" toml:"dir"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   DefaultPrompt,
		Greeting: DefaultGreeting,
		History:  HistoryConfig{Limit: DefaultHistoryLimit},
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig parses a config file, picking the decoder from its extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: resolve %s", path)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", absPath)
	}
	defer file.Close()

	var raw configFile
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".toml":
		meta, err := toml.NewDecoder(file).Decode(&raw)
		if err != nil {
			return nil, errors.Wrapf(err, "config: parse %s", absPath)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("config: parse %s: unknown field %q", absPath, undecoded[0].String())
		}
	default:
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "config: parse %s", absPath)
		}
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	base := filepath.Dir(path)

	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.Greeting != nil {
		cfg.Greeting = *raw.Greeting
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if raw.History != nil {
		cfg.History.File = resolveRelative(base, raw.History.File)
		cfg.History.Disabled = raw.History.Disabled
		if raw.History.Limit != nil {
			cfg.History.Limit = *raw.History.Limit
		}
	}
	for _, src := range raw.Fixtures {
		cfg.Fixtures = append(cfg.Fixtures, FixtureSource{
			Name:   strings.TrimSpace(src.Name),
			Path:   resolveRelative(base, src.Path),
			Git:    strings.TrimSpace(src.Git),
			Rev:    strings.TrimSpace(src.Rev),
			Tag:    strings.TrimSpace(src.Tag),
			Branch: strings.TrimSpace(src.Branch),
			Dir:    filepath.Clean(filepath.FromSlash(strings.TrimSpace(src.Dir))),
		})
	}
	return cfg
}

func resolveRelative(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.History.Limit < 0 {
		result = multierror.Append(result, errors.Errorf("history.limit must not be negative (got %d)", c.History.Limit))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, errors.Errorf("log_level %q is not a valid level", c.LogLevel))
	}

	names := make(map[string]struct{}, len(c.Fixtures))
	for i, src := range c.Fixtures {
		label := src.Name
		if label == "" {
			result = multierror.Append(result, errors.Errorf("fixtures[%d]: name must be provided", i))
			label = fmt.Sprintf("fixtures[%d]", i)
		} else if _, dup := names[label]; dup {
			result = multierror.Append(result, errors.Errorf("fixtures: duplicate name %q", label))
		}
		names[label] = struct{}{}

		switch {
		case src.Path != "" && src.IsGit():
			result = multierror.Append(result, errors.Errorf("%s: path and git are mutually exclusive", label))
		case src.Path == "" && !src.IsGit():
			result = multierror.Append(result, errors.Errorf("%s: one of path or git is required", label))
		case src.IsGit() && src.Rev == "" && src.Tag == "" && src.Branch == "":
			result = multierror.Append(result, errors.Errorf("%s: git sources require rev, tag, or branch", label))
		case !src.IsGit() && (src.Rev != "" || src.Tag != "" || src.Branch != ""):
			result = multierror.Append(result, errors.Errorf("%s: rev, tag, and branch only apply to git sources", label))
		}
		if src.Dir == ".." || strings.HasPrefix(src.Dir, ".."+string(filepath.Separator)) || filepath.IsAbs(src.Dir) {
			result = multierror.Append(result, errors.Errorf("%s: dir must stay inside the source", label))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// FindConfig walks up from start looking for one of ConfigFileNames.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "resolve start directory %q", start)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrConfigNotFound, "no %s found from %s upwards", strings.Join(ConfigFileNames, "/"), origin)
		}
		dir = parent
	}
}
