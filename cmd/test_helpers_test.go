package cmd

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli"
)

// captureOutput redirects os.Stdout and os.Stderr while f runs and returns
// what was written to each.
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		var b bytes.Buffer
		io.Copy(&b, rOut)
		outC <- b.String()
	}()
	go func() {
		var b bytes.Buffer
		io.Copy(&b, rErr)
		errC <- b.String()
	}()

	f()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdout, stderr = <-outC, <-errC
	rOut.Close()
	rErr.Close()
	return stdout, stderr
}

// assertContains checks if output contains the expected substring.
func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}

// assertNotContains checks if output does NOT contain the specified substring.
func assertNotContains(t *testing.T, output, notExpected string) {
	t.Helper()
	if strings.Contains(output, notExpected) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", notExpected, output)
	}
}

// assertErrorFormat checks that err renders as cmd[action]: msg, which main
// prefixes with "chronowall: ".
func assertErrorFormat(t *testing.T, err error, cmd, action string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s[%s] error, got nil", cmd, action)
	}
	pattern := cmd + "[" + action + "]:"
	if !strings.HasPrefix(err.Error(), pattern) {
		t.Errorf("expected error format %q, got: %v", pattern, err)
	}
}

// assertContainsAll checks that output contains all expected substrings.
func assertContainsAll(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("expected output to contain %q, got:\n%s", exp, output)
		}
	}
}

// newContext creates a CLI context carrying the global flags.
func newContext(t *testing.T, args []string, name string) *cli.Context {
	t.Helper()
	app := cli.NewApp()
	app.HelpName = "chronowall"
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	for _, f := range globalFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = cli.Command{Name: name}
	return ctx
}

// sandbox points every chronowall directory at a fresh temp dir and returns
// it.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHRONOWALL_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("CHRONOWALL_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("CHRONOWALL_CONFIG", "")
	t.Setenv("CHRONOWALL_BACKEND", "")
	t.Setenv("CHRONOWALL_DEBUG", "")
	return dir
}

// writeTree creates empty files (and their parents) under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}
