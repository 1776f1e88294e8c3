package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GitFetcher checks out git-hosted fixture sources into a local cache.
type GitFetcher struct {
	cacheDir string
	log      logrus.FieldLogger
}

// Checkout describes a fixture source materialised on disk.
type Checkout struct {
	Name    string
	Dir     string
	Version string
	Commit  string
}

func NewGitFetcher(cacheDir string, log logrus.FieldLogger) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GitFetcher{cacheDir: cacheDir, log: log}
}

// Fetch resolves src to a pinned commit and returns the fixture directory
// inside its checkout. A checkout already in the cache is reused.
func (g *GitFetcher) Fetch(src FixtureSource) (*Checkout, error) {
	if g == nil {
		return nil, errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(src.Git)
	if url == "" {
		return nil, errors.Errorf("fixture source %q: git URL required", src.Name)
	}

	baseDir := filepath.Join(g.cacheDir, sanitizePathSegment(src.Name))
	version, commit, err := g.ensureCheckout(baseDir, url, src)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture source %q", src.Name)
	}

	dir := filepath.Join(baseDir, sanitizePathSegment(version))
	if src.Dir != "" && src.Dir != "." {
		dir = filepath.Join(dir, src.Dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture source %q: missing directory %s", src.Name, src.Dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("fixture source %q: %s is not a directory", src.Name, src.Dir)
	}
	return &Checkout{Name: src.Name, Dir: dir, Version: version, Commit: commit}, nil
}

func (g *GitFetcher) ensureCheckout(baseDir, url string, src FixtureSource) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor, err := gitRevisionFromSource(src)
	if err != nil {
		return "", "", err
	}

	if rev := strings.TrimSpace(src.Rev); rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			g.log.WithField("rev", rev).Debug("reusing cached fixture checkout")
			return rev, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	g.log.WithFields(logrus.Fields{"url": url, "revision": revision}).Debug("cloning fixture source")
	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", errors.Wrapf(err, "git clone %s", url)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", errors.Wrapf(err, "resolve revision %s", revision)
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return version, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", errors.Wrapf(err, "git checkout %s", revision)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	g.log.WithFields(logrus.Fields{"dir": targetDir, "commit": hash.String()}).Debug("fixture source checked out")
	return version, hash.String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	commit = strings.TrimSpace(commit)
	descriptor = strings.TrimSpace(descriptor)
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func gitRevisionFromSource(src FixtureSource) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(src.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(src.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(src.Branch); branch != "" {
		// PlainClone only creates the default local branch; other branches
		// exist as remote-tracking refs.
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return "", "", errors.New("git sources require rev, tag, or branch")
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
