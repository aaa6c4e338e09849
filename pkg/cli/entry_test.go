package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/lolc/pkg/cli"
)

type result struct {
	code           int
	stdout, stderr string
}

func lolc(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cli.Main(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	r := lolc(t, "", "version")
	if r.code != cli.ExitOK || !strings.HasPrefix(r.stdout, "lolc ") {
		t.Errorf("got %+v", r)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"frobnicate"}},
		{"missing source", []string{"run"}},
		{"bad flag", []string{"check", "-nope", "x.lol"}},
		{"cache without action", []string{"cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := lolc(t, "", tt.args...); r.code != cli.ExitUsage {
				t.Errorf("exit code = %d, want %d (stderr %q)", r.code, cli.ExitUsage, r.stderr)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "hello.lol", `HAI 1.2
I HAS A name ITZ YARN
GIMMEH name
VISIBLE "O HAI " AN name
KTHXBYE
`)
	r := lolc(t, "Ceiling Cat\n", "run", path)
	if r.code != cli.ExitOK {
		t.Fatalf("exit code %d, stderr:\n%s", r.code, r.stderr)
	}
	if r.stdout != "O HAI Ceiling Cat\n" {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestRunReportsRuntimeFault(t *testing.T) {
	path := writeSource(t, t.TempDir(), "div.lol", "HAI 1.2\nVISIBLE MOD OF 3 AN 0\nKTHXBYE\n")
	r := lolc(t, "", "run", path)
	if r.code != cli.ExitFailure {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stderr, "[R001]") {
		t.Errorf("stderr = %q", r.stderr)
	}
}

func TestCheckRendersDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.lol", "HAI 1.2\nVISIBLE SUM OF 1 AN WIN\nKTHXBYE\n")
	r := lolc(t, "", "check", path)
	if r.code != cli.ExitFailure {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	want := "   2 | VISIBLE SUM OF 1 AN WIN\n" +
		"     |                     ^^^\n" +
		"Error: Expected NUMBER type but got TROOF at line 2, column 21:23\n"
	if !strings.Contains(r.stderr, want) {
		t.Errorf("stderr:\n%s\nwant:\n%s", r.stderr, want)
	}
}

func TestCheckDumpsIR(t *testing.T) {
	path := writeSource(t, t.TempDir(), "ok.lol", "HAI 1.2\nI HAS A x ITZ NUMBER R 1\nKTHXBYE\n")
	r := lolc(t, "", "check", "-ir", path)
	if r.code != cli.ExitOK {
		t.Fatalf("exit code %d, stderr:\n%s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "HALT") {
		t.Errorf("missing HALT in IR:\n%s", r.stdout)
	}
}

func TestBuildListing(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.lol", "HAI 1.2\nVISIBLE \"hi\"\nKTHXBYE\n")
	out := filepath.Join(dir, "prog.s")
	r := lolc(t, "", "build", "-target", "asm", "-no-cache", "-o", out, path)
	if r.code != cli.ExitOK {
		t.Fatalf("exit code %d, stderr:\n%s", r.code, r.stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "CALL_FOREIGN print_string") {
		t.Errorf("unexpected listing:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, ".lolc")); !os.IsNotExist(err) {
		t.Error("cache directory created despite -no-cache")
	}
}

func TestBuildUsesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lolc.yaml", "target: asm\noutput: out/listing.s\ncache_dir: cache\n")
	if err := os.Mkdir(filepath.Join(dir, "out"), 0755); err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, dir, "prog.lol", "HAI 1.2\nVISIBLE 1\nKTHXBYE\n")

	r := lolc(t, "", "build", path)
	if r.code != cli.ExitOK {
		t.Fatalf("exit code %d, stderr:\n%s", r.code, r.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "listing.s")); err != nil {
		t.Errorf("listing not written: %v", err)
	}

	r = lolc(t, "", "cache", "list", "-dir", filepath.Join(dir, "cache"))
	if r.code != cli.ExitOK || strings.Count(r.stdout, "\n") != 1 {
		t.Errorf("cache list = %+v", r)
	}

	r = lolc(t, "", "cache", "clean", "-dir", filepath.Join(dir, "cache"))
	if r.code != cli.ExitOK {
		t.Fatalf("cache clean failed: %s", r.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache")); !os.IsNotExist(err) {
		t.Error("cache directory still exists")
	}
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.lol", "HAI 1.2, I HAS A x ITZ NUMBER R 1, VISIBLE x, KTHXBYE")
	want := "HAI 1.2\n  I HAS A x ITZ NUMBER R 1\n  VISIBLE x\nKTHXBYE\n"

	r := lolc(t, "", "fmt", path)
	if r.code != cli.ExitOK || r.stdout != want {
		t.Fatalf("got %+v", r)
	}

	if r := lolc(t, "", "fmt", "-w", path); r.code != cli.ExitOK {
		t.Fatalf("fmt -w failed: %s", r.stderr)
	}
	data, _ := os.ReadFile(path)
	if string(data) != want {
		t.Errorf("file = %q", data)
	}
}
