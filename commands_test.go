package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	out, err := run(t, "solve", "--target", "24", "--workers", "2", "2", "4", "8", "12")
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.Contains(out, "(12 - 8) * (2 + 4) = 24\n") {
		t.Errorf("expected (12 - 8) * (2 + 4) in output:\n%s", out)
	}

	if !strings.Contains(out, "attempted 7680 expressions") {
		t.Errorf("expected attempt count in output:\n%s", out)
	}
}

func TestSolveCommandLimit(t *testing.T) {
	out, err := run(t, "solve", "-t", "10", "-n", "2", "1", "2", "3", "4")
	if err != nil {
		t.Error(err)
		return
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Errorf("expected two expressions and a summary, but got:\n%s", out)
	}
}

func TestSolveCommandBadNumber(t *testing.T) {
	if _, err := run(t, "solve", "1", "x"); err == nil {
		t.Error("expected an error for a bad number")
	}
}

func TestSolveCommandNegativeNumbers(t *testing.T) {
	out, err := run(t, "solve", "--target=-12", "--", "-3", "4")
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.Contains(out, "(-3) * 4 = -12\n") {
		t.Errorf("expected (-3) * 4 in output:\n%s", out)
	}

	out, err = run(t, "solve", "-t", "2", "1", "-1")
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.Contains(out, "1 - (-1) = 2\n") {
		t.Errorf("expected 1 - (-1) in output:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "8 / (4 / 2) * 6")
	if err != nil {
		t.Error(err)
		return
	}

	if diff := cmp.Diff("24\n", out); diff != "" {
		t.Error(diff)
	}

	out, err = run(t, "--ops", "+,^", "check", "2 ^ 3 + 1")
	if err != nil {
		t.Error(err)
		return
	}

	if diff := cmp.Diff("9\n", out); diff != "" {
		t.Error(diff)
	}

	if _, err := run(t, "check", "2 ^ 3"); err == nil {
		t.Error("expected '^' to be rejected by the default table")
	}
}

func TestOperatorsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.yaml")
	content := "operators:\n  - builtin: add\n  - symbol: \"**\"\n    builtin: pow\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Error(err)
		return
	}

	out, err := run(t, "--config", path, "operators")
	if err != nil {
		t.Error(err)
		return
	}

	want := "+        precedence=1 associative=true\n" +
		"**       precedence=5 associative=false\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Error(diff)
	}

	if _, err := run(t, "--config", path, "--ops", "+", "operators"); err == nil {
		t.Error("expected --config and --ops together to fail")
	}
}
