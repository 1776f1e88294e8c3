package driver

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ResolveFixtureSources returns a local directory for every configured
// fixture source, fetching git sources through fetcher.
func ResolveFixtureSources(sources []FixtureSource, fetcher *GitFetcher) ([]*Checkout, error) {
	checkouts := make([]*Checkout, 0, len(sources))
	for _, src := range sources {
		if src.IsGit() {
			checkout, err := fetcher.Fetch(src)
			if err != nil {
				return nil, err
			}
			checkouts = append(checkouts, checkout)
			continue
		}
		dir := src.Path
		if src.Dir != "" && src.Dir != "." {
			dir = filepath.Join(dir, src.Dir)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture source %q", src.Name)
		}
		if !info.IsDir() {
			return nil, errors.Errorf("fixture source %q: %s is not a directory", src.Name, dir)
		}
		checkouts = append(checkouts, &Checkout{Name: src.Name, Dir: dir, Version: "local"})
	}
	return checkouts, nil
}
