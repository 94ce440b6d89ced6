package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

const mixedSource = "int f(void);\nvoid g(void);\nint main(void) {\n\tf();\n\t(void)g();\n\treturn 0;\n}\n"

func TestWarnMode(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)
	var stdout, stderr bytes.Buffer

	code := Run(Options{Paths: []string{path}, Stdout: &stdout, Stderr: &stderr})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitOK, stderr.String())
	}

	wantMissing := path + ":4:2: Missing cast to void when calling function f.\n"
	wantPointless := path + ":5:2: Pointless cast to void when calling function g.\n"
	if got := stderr.String(); got != wantMissing+wantPointless {
		t.Errorf("stderr = %q, want %q", got, wantMissing+wantPointless)
	}
	if readBack(t, path) != mixedSource {
		t.Error("warn mode modified the source file")
	}
}

func TestExtendedStatus(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)

	code := Run(Options{
		Paths:          []string{path},
		ExtendedStatus: true,
		Stdout:         &bytes.Buffer{},
		Stderr:         &bytes.Buffer{},
	})
	if code != ExitSuggestion {
		t.Errorf("exit code = %d, want %d", code, ExitSuggestion)
	}

	clean := writeSource(t, "clean.c", "int main(void) {\n\treturn 0;\n}\n")
	code = Run(Options{
		Paths:          []string{clean},
		ExtendedStatus: true,
		Stdout:         &bytes.Buffer{},
		Stderr:         &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Errorf("exit code for clean file = %d, want %d", code, ExitOK)
	}
}

func TestInteractiveAcceptAll(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)
	var stdout bytes.Buffer

	code := Run(Options{
		Paths:       []string{path},
		Interactive: true,
		Stdin:       strings.NewReader("y\ny\n"),
		Stdout:      &stdout,
		Stderr:      &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d\n%s", code, ExitOK, stdout.String())
	}

	want := "int f(void);\nvoid g(void);\nint main(void) {\n\t(void)f();\n\tg();\n\treturn 0;\n}\n"
	if got := readBack(t, path); got != want {
		t.Errorf("rewritten file = %q, want %q", got, want)
	}
	if readBack(t, path+"~") != mixedSource {
		t.Error("backup does not hold the original content")
	}
}

func TestInteractiveRejectAll(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)

	code := Run(Options{
		Paths:       []string{path},
		Interactive: true,
		Stdin:       strings.NewReader("n\nn\n"),
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	if readBack(t, path) != mixedSource {
		t.Error("rejected fixes were applied anyway")
	}
	if _, err := os.Stat(path + "~"); !os.IsNotExist(err) {
		t.Error("backup created although nothing was applied")
	}
}

func TestInteractiveEndOfInput(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)
	var stdout bytes.Buffer

	code := Run(Options{
		Paths:       []string{path},
		Interactive: true,
		Stdin:       strings.NewReader("y\n"),
		Stdout:      &stdout,
		Stderr:      &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	if !strings.Contains(stdout.String(), "Okay, exiting.") {
		t.Errorf("missing farewell in output:\n%s", stdout.String())
	}
	if readBack(t, path) != mixedSource {
		t.Error("modifications applied after the prompt stream ended")
	}
}

func TestDryRun(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)
	var stdout bytes.Buffer

	code := Run(Options{
		Paths:  []string{path},
		DryRun: true,
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	diff := stdout.String()
	for _, fragment := range []string{"-\tf();", "+\t(void)f();", "-\t(void)g();", "+\tg();"} {
		if !strings.Contains(diff, fragment) {
			t.Errorf("diff lacks %q:\n%s", fragment, diff)
		}
	}
	if readBack(t, path) != mixedSource {
		t.Error("dry run modified the source file")
	}
}

func TestUnjudgeableWarning(t *testing.T) {
	path := writeSource(t, "unknown.c", "int main(void) {\n\tmystery();\n\treturn 0;\n}\n")
	var stderr bytes.Buffer

	code := Run(Options{Paths: []string{path}, Stdout: &bytes.Buffer{}, Stderr: &stderr})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	want := path + ":2:2: Warning: can't check call to mystery (can't find original definition).\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestExcludeSymbolGlob(t *testing.T) {
	path := writeSource(t, "dbg.c", "int debug_print(void);\nint main(void) {\n\tdebug_print();\n\treturn 0;\n}\n")
	var stderr bytes.Buffer

	code := Run(Options{
		Paths:             []string{path},
		ExcludeSymbolGlob: []string{"debug_*"},
		ExtendedStatus:    true,
		Stdout:            &bytes.Buffer{},
		Stderr:            &stderr,
	})
	if code != ExitOK {
		t.Errorf("exit code = %d, want %d (finding should be filtered)", code, ExitOK)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", stderr.String())
	}
}

func TestInteractiveAppliesBeforeParseFailure(t *testing.T) {
	good := writeSource(t, "good.c", "int f(void);\nint main(void) {\n\tf();\n\treturn 0;\n}\n")
	bad := writeSource(t, "bad.c", "int main(void) { f( ; }\n")
	var stderr bytes.Buffer

	code := Run(Options{
		Paths:       []string{good, bad},
		Interactive: true,
		Stdin:       strings.NewReader("y\n"),
		Stdout:      &bytes.Buffer{},
		Stderr:      &stderr,
	})
	if code != ExitFileParse {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitFileParse, stderr.String())
	}
	want := "int f(void);\nint main(void) {\n\t(void)f();\n\treturn 0;\n}\n"
	if got := readBack(t, good); got != want {
		t.Errorf("accepted fix was not applied before exiting: %q", got)
	}
	if !strings.Contains(stderr.String(), "Aborting parse.") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestParseFailureExit(t *testing.T) {
	path := writeSource(t, "broken.c", "int main(void) { f( ; }\n")
	var stderr bytes.Buffer

	code := Run(Options{Paths: []string{path}, Stdout: &bytes.Buffer{}, Stderr: &stderr})
	if code != ExitFileParse {
		t.Errorf("exit code = %d, want %d", code, ExitFileParse)
	}
	if !strings.Contains(stderr.String(), "Aborting parse.") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestMissingInputExit(t *testing.T) {
	code := Run(Options{
		Paths:  []string{filepath.Join(t.TempDir(), "absent.c")},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if code != ExitFileOpen {
		t.Errorf("exit code = %d, want %d", code, ExitFileOpen)
	}
}

func TestNoInputFiles(t *testing.T) {
	var stderr bytes.Buffer
	code := Run(Options{Paths: []string{t.TempDir()}, Stdout: &bytes.Buffer{}, Stderr: &stderr})
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "no input files") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestReportJSON(t *testing.T) {
	path := writeSource(t, "mixed.c", mixedSource)
	var stdout bytes.Buffer

	code := Run(Options{
		Paths:      []string{path},
		ReportJSON: true,
		Stdout:     &stdout,
		Stderr:     &bytes.Buffer{},
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	for _, fragment := range []string{
		`"files_scanned": 1`,
		`"missing_void": 1`,
		`"superfluous_void": 1`,
		`"unjudgeable_calls": 0`,
	} {
		if !strings.Contains(stdout.String(), fragment) {
			t.Errorf("summary lacks %q:\n%s", fragment, stdout.String())
		}
	}
}

func TestDefinesFlowThrough(t *testing.T) {
	path := writeSource(t, "def.c", "RESULT g(void);\nint main(void) {\n\t(void)g();\n\treturn 0;\n}\n")
	var stderr bytes.Buffer

	code := Run(Options{
		Paths:   []string{path},
		Defines: []string{"RESULT=void"},
		Stdout:  &bytes.Buffer{},
		Stderr:  &stderr,
	})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	if !strings.Contains(stderr.String(), "Pointless cast to void when calling function g.") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestParseDefines(t *testing.T) {
	got := parseDefines([]string{"NAME", "PAIR=value", "EQ=a=b"})
	if got["NAME"] != "" || got["PAIR"] != "value" || got["EQ"] != "a=b" {
		t.Errorf("parseDefines = %v", got)
	}
}
