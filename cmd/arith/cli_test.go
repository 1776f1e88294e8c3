package main

import (
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"arith/interpreter-go/pkg/driver"
)

var _ = Describe("arith repl", func() {
	var arith *arithTest

	BeforeEach(func() {
		arith = newArithTest()
	})

	It("greets, evaluates each line and reports errors", func() {
		arith.stdin = "succ zero pred succ zero\n\nfoo\nis_zero true\n"
		session := arith.Arith()
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(Equal("\nWelcome to the Arith REPL!\n1\n0\nError: Invalid keyword : foo\nis_zero true\n"))
		Expect(arith.history).To(Equal([]string{"succ zero pred succ zero", "foo", "is_zero true"}))
	})

	It("uses the default prompt and history file", func() {
		session := arith.Arith("repl")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(arith.readerOptions.Prompt).To(Equal(driver.DefaultPrompt))
		Expect(arith.readerOptions.HistoryFile).To(Equal(filepath.Join(arith.home, "history")))
		Expect(arith.readerOptions.HistoryLimit).To(Equal(driver.DefaultHistoryLimit))
	})

	It("honours the config file", func() {
		arith.WriteFile("arith.yml", "prompt: \"arith> \"\ngreeting: hello\nhistory:\n  disabled: true\n")
		arith.stdin = "true\n"
		session := arith.Arith("repl")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(Equal("hello\ntrue\n"))
		Expect(arith.readerOptions.Prompt).To(Equal("arith> "))
		Expect(arith.readerOptions.HistoryFile).To(BeEmpty())
	})

	It("rejects stray arguments", func() {
		session := arith.Arith("zero")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring("unknown command"))
	})
})

var _ = Describe("arith run", func() {
	var arith *arithTest

	BeforeEach(func() {
		arith = newArithTest()
	})

	It("evaluates an expression", func() {
		session := arith.Arith("run", "-e", "succ zero pred succ zero")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputLines()).To(Equal([]string{"1", "0"}))
	})

	It("evaluates a whole file as one source", func() {
		path := arith.WriteFile("prog.arith", "if is_zero pred succ zero\nthen succ succ zero\nelse false\n")
		session := arith.Arith("run", path)
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(Equal("2\n"))
	})

	It("stops at the first failing source", func() {
		session := arith.Arith("run", "-e", "zero", "-e", "succ", "-e", "true")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.OutputToString()).To(Equal("0\n"))
		Expect(session.ErrorToString()).To(Equal("Error: Invalid program!\n"))
	})

	It("requires input", func() {
		session := arith.Arith("run")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring("a source file or --expression is required"))
	})

	It("reports unreadable files", func() {
		session := arith.Arith("run", filepath.Join(arith.workDir, "missing.arith"))
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring("read "))
	})

	It("logs at the requested level", func() {
		session := arith.Arith("--log-level", "debug", "run", "-e", "zero")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.ErrorToString()).To(ContainSubstring("called arith run"))

		session = arith.Arith("--log-level", "chatty", "run", "-e", "zero")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring(`invalid --log-level "chatty"`))
	})

	It("refuses an invalid config", func() {
		arith.WriteFile("arith.toml", "log_level = \"loud\"\n")
		session := arith.Arith("run", "-e", "zero")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring("config validation failed"))
	})
})

var _ = Describe("arith parse", func() {
	var arith *arithTest

	BeforeEach(func() {
		arith = newArithTest()
	})

	It("prints terms without evaluating them", func() {
		session := arith.Arith("parse", "-e", "pred succ zero is_zero zero")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputLines()).To(Equal([]string{"pred 1", "is_zero 0"}))
	})

	It("prints constructor notation", func() {
		session := arith.Arith("parse", "--format", "inspect", "-e", "if true then succ zero else zero")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(Equal("If(True, Succ(Zero), Zero)\n"))
	})

	It("dumps json", func() {
		session := arith.Arith("parse", "-f", "json", "-e", "succ zero")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(MatchJSON(`[{"kind": "Succ", "children": [{"kind": "Zero"}]}]`))
	})

	It("dumps yaml", func() {
		session := arith.Arith("parse", "-f", "yaml", "-e", "is_zero zero true")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(MatchYAML("- kind: IsZero\n  children:\n    - kind: Zero\n- kind: \"True\"\n"))
	})

	It("rejects unknown formats and bad programs", func() {
		session := arith.Arith("parse", "-f", "xml", "-e", "zero")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring(`unknown --format "xml"`))

		session = arith.Arith("parse", "-e", "if true then zero")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(Equal("Error: Invalid If statement. Missing 'else' clause.\n"))
	})
})

var _ = Describe("arith trace", func() {
	var arith *arithTest

	BeforeEach(func() {
		arith = newArithTest()
	})

	It("prints every generation", func() {
		session := arith.Arith("trace", "-e", "if is_zero zero then pred succ succ zero else zero true")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputLines()).To(Equal([]string{
			"if is_zero 0 then pred 2 else 0",
			"-> if true then pred 2 else 0",
			"-> pred 2",
			"-> 1",
			"",
			"true",
		}))
	})

	It("shows a stuck term once", func() {
		session := arith.Arith("trace", "-e", "is_zero true")
		Expect(session.ExitCode()).To(Equal(0))
		Expect(session.OutputToString()).To(Equal("is_zero true\n"))
	})
})

var _ = Describe("arith test", func() {
	var arith *arithTest

	BeforeEach(func() {
		arith = newArithTest()
	})

	It("replays the bundled suites", func() {
		session := arith.Arith("test", filepath.Join("..", "..", "fixtures", "arith"))
		Expect(session.ExitCode()).To(Equal(0), session.OutputToString())
		Expect(session.OutputToString()).To(MatchRegexp(`\d+ suites, \d+ passed, 0 failed`))
	})

	It("defaults to ./fixtures and reports failures", func() {
		arith.WriteFile(filepath.Join("fixtures", "core.yml"), `
cases:
  - name: one
    source: succ zero
    expect: "1"
  - name: wrong
    source: zero
    expect: "1"
`)
		session := arith.Arith("test")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.OutputToString()).To(ContainSubstring("FAIL "))
		Expect(session.OutputToString()).To(ContainSubstring("wrong"))
		Expect(session.OutputToString()).To(ContainSubstring("1 suites, 1 passed, 1 failed"))
	})

	It("fails without any fixture directory", func() {
		session := arith.Arith("test")
		Expect(session.ExitCode()).To(Equal(1))
		Expect(session.ErrorToString()).To(ContainSubstring("no fixture directories given"))
	})

	It("fetches suites declared as git sources", func() {
		repoDir := filepath.Join(arith.home, "..", "upstream")
		writeRepoFile(repoDir, filepath.Join("suites", "bools.yml"), `
cases:
  - name: is_zero
    source: is_zero zero
    expect: "true"
`)
		rev := commitRepo(repoDir)

		arith.WriteFile("arith.yml", `
fixtures:
  - name: upstream
    git: `+repoDir+`
    rev: `+rev+`
    dir: suites
`)
		session := arith.Arith("test")
		Expect(session.ExitCode()).To(Equal(0), session.OutputToString()+session.ErrorToString())
		Expect(session.OutputToString()).To(ContainSubstring("1 suites, 1 passed, 0 failed"))
		Expect(filepath.Join(driver.FixtureCacheDir(arith.home), "upstream", rev, "suites", "bools.yml")).To(BeAnExistingFile())
	})
})

var _ = Describe("arith version", func() {
	It("prints the tool version", func() {
		arith := newArithTest()
		for _, args := range [][]string{{"version"}, {"--version"}} {
			session := arith.Arith(args...)
			Expect(session.ExitCode()).To(Equal(0))
			Expect(session.OutputToString()).To(Equal(cliToolVersion + "\n"))
		}
	})
})

func writeRepoFile(repoDir, name, contents string) {
	GinkgoHelper()
	path := filepath.Join(repoDir, name)
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(contents), 0o644)).To(Succeed())
}

func commitRepo(repoDir string) string {
	GinkgoHelper()
	repo, err := git.PlainInit(repoDir, false)
	Expect(err).NotTo(HaveOccurred())
	worktree, err := repo.Worktree()
	Expect(err).NotTo(HaveOccurred())
	Expect(worktree.AddGlob("suites/*")).To(Succeed())
	hash, err := worktree.Commit("fixtures", &git.CommitOptions{
		Author: &object.Signature{Name: "Arith CLI", Email: "arith@example.com", When: time.Now()},
	})
	Expect(err).NotTo(HaveOccurred())
	return hash.String()
}
