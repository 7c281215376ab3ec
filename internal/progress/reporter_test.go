package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Action: "Importing files", Out: &buf}

	cb := Func(r)
	cb(1, 2, "README.md")
	cb(2, 2, "src/main.go")
	r.Finish()

	want := "Importing files: 2 files\n" +
		"[1/2] README.md\n" +
		"[2/2] src/main.go\n" +
		"Importing files: done\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{Action: "x"}
	r.Update(1, "ignored")
	r.Finish()
}
