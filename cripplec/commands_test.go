package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Keep user-level config files out of the way.
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := execute(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestTokensCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.cc", `main { print "hi"; }`)

	stdout, _, err := runCLI(t, "tokens", path)
	if err != nil {
		t.Fatalf("tokens returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 token lines, got %d:\n%s", len(lines), stdout)
	}
	if lines[0] != "MAIN     main" || lines[3] != `STRING   "hi"` {
		t.Errorf("unexpected token lines:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "tokens", "--json", "--numeric", writeFile(t, t.TempDir(), "n.cc", "var x = 7;"))
	if err != nil {
		t.Fatal(err)
	}
	var got []struct {
		Type    string `json:"type"`
		Literal string `json:"literal"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, stdout)
	}
	if len(got) != 5 || got[3].Type != "INT" || got[3].Literal != "7" {
		t.Errorf("unexpected json tokens: %+v", got)
	}
}

func TestASTCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.cc", `main { print "hi"; }`)

	stdout, _, err := runCLI(t, "ast", path)
	if err != nil {
		t.Fatalf("ast returned error: %v", err)
	}
	if stdout != "main\n  print\n    \"hi\"\n" {
		t.Errorf("unexpected tree output:\n%q", stdout)
	}

	stdout, _, err = runCLI(t, "ast", "-f", "sexpr", path)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "(main (print \"hi\"))\n" {
		t.Errorf("unexpected sexpr output: %q", stdout)
	}

	_, _, err = runCLI(t, "ast", "-f", "xml", path)
	if err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestASTCommandFatal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.cc", `main print "x";`)

	stdout, stderr, err := runCLI(t, "ast", path)
	if err == nil {
		t.Fatal("expected error for missing block")
	}
	if stdout != "" {
		t.Errorf("no tree should be printed on fatal error, got %q", stdout)
	}
	want := "CRIPPLE CODE: ERROR: line 1:6: expected '{' after main, got print\n"
	if stderr != want {
		t.Errorf("fatal error should be reported once.\nGot:  %q\nWant: %q", stderr, want)
	}
}

func TestUnknownFileType(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.txt", `main { }`)

	_, stderr, err := runCLI(t, "ast", path)
	if err == nil {
		t.Fatal("expected error for wrong extension")
	}
	if !strings.HasPrefix(stderr, "CRIPPLE CODE: ERROR: unknown file type") {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	cfgPath := writeFile(t, t.TempDir(), "cripple.toml", "[source]\nextension = \".txt\"\n")
	if _, _, err := runCLI(t, "--config", cfgPath, "ast", path); err != nil {
		t.Errorf("configured extension should be accepted, got %v", err)
	}
}

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.cc", `var x = "a"; print x;`)
	dirty := writeFile(t, dir, "dirty.cc", `var x = "a"; print y;`)

	if _, _, err := runCLI(t, "lint", clean); err != nil {
		t.Errorf("clean file should lint without issues, got %v", err)
	}

	_, stderr, err := runCLI(t, "lint", clean, dirty)
	if err == nil || !strings.Contains(err.Error(), "linting found 2 issues") {
		t.Fatalf("expected 2 issues, got %v", err)
	}
	if !strings.Contains(stderr, "dirty.cc:1:20") || !strings.Contains(stderr, "[LINT]") {
		t.Errorf("unexpected lint report:\n%s", stderr)
	}
	if strings.Contains(stderr, "clean.cc") {
		t.Errorf("clean file should not be reported:\n%s", stderr)
	}
}

func TestLintCommandJSON(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.cc", `var a = "1"; print a;`),
		writeFile(t, dir, "b.cc", `main print;`),
		writeFile(t, dir, "c.cc", `var c = "1";`),
	}

	args := append([]string{"lint", "--json", "--concurrent"}, paths...)
	stdout, _, err := runCLI(t, args...)
	if err == nil {
		t.Fatal("expected lint to report issues")
	}

	var reports []fileReport
	if err := json.Unmarshal([]byte(stdout), &reports); err != nil {
		t.Fatalf("invalid json output: %v\n%s", err, stdout)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	for i, r := range reports {
		if r.Path != paths[i] {
			t.Errorf("reports[%d] - reports should keep argument order, got %s", i, r.Path)
		}
	}
	if len(reports[0].Diagnostics) != 0 {
		t.Errorf("a.cc should be clean, got %v", reports[0].Diagnostics)
	}
	if d := reports[1].Diagnostics; len(d) != 1 || !d[0].IsFatal() {
		t.Errorf("b.cc should have one fatal error, got %v", d)
	}
	if d := reports[2].Diagnostics; len(d) != 1 || d[0].Args[0] != "c" {
		t.Errorf("c.cc should report unused variable c, got %v", d)
	}
}

func TestLintCommandMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "lint", "does-not-exist.cc")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var reported reportedError
	if errors.As(err, &reported) {
		t.Error("read errors should not be marked as already reported")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "cripplec v"+Version) {
		t.Errorf("unexpected version output: %q", stdout)
	}
}
