package cmdshared

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLineChooserRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	c := NewLineChooser(strings.NewReader("abc\n0\n4\n 2 \n"), &out, 0)

	i, err := c.Choose("Please pick the pack you want.", []string{"One", "Two", "Three"})
	if err != nil {
		t.Fatal(err)
	}
	if i != 1 {
		t.Errorf("Expected index 1, found %d", i)
	}
	if n := strings.Count(out.String(), "Invalid input"); n != 3 {
		t.Errorf("Expected 3 re-prompts, found %d:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "3: Three\n") {
		t.Errorf("Options should be numbered from 1:\n%s", out.String())
	}
}

func TestLineChooserAttemptLimit(t *testing.T) {
	var out bytes.Buffer
	c := NewLineChooser(strings.NewReader("x\ny\n1\n"), &out, 2)

	_, err := c.Choose("Pick one", []string{"One"})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("Expected ErrTooManyAttempts, found %v", err)
	}
}

func TestLineChooserClosedInput(t *testing.T) {
	var out bytes.Buffer
	c := NewLineChooser(strings.NewReader("nope\n"), &out, 0)

	if _, err := c.Choose("Pick one", []string{"One", "Two"}); err == nil {
		t.Fatal("Expected an error once input is exhausted")
	}
}

func TestLineChooserLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	c := NewLineChooser(strings.NewReader("2"), &out, 0)

	i, err := c.Choose("Pick one", []string{"One", "Two"})
	if err != nil {
		t.Fatal(err)
	}
	if i != 1 {
		t.Errorf("Expected index 1, found %d", i)
	}
}

func TestLineChooserSharesInputAcrossPrompts(t *testing.T) {
	var out bytes.Buffer
	c := NewLineChooser(strings.NewReader("2\n1\nn\n\n"), &out, 0)

	first, err := c.Choose("Pack", []string{"A", "B"})
	if err != nil || first != 1 {
		t.Fatalf("Expected first choice 1, found %d (%v)", first, err)
	}
	second, err := c.Choose("File", []string{"a", "b"})
	if err != nil || second != 0 {
		t.Fatalf("Expected second choice 0, found %d (%v)", second, err)
	}
	if ok, err := c.Confirm("Overwrite? [Y/n] "); err != nil || ok {
		t.Errorf("Expected no, found %v (%v)", ok, err)
	}
	if ok, err := c.Confirm("Overwrite? [Y/n] "); err != nil || !ok {
		t.Errorf("Empty answer should default to yes, found %v (%v)", ok, err)
	}
}

func TestAutoChooser(t *testing.T) {
	var out bytes.Buffer
	c := AutoChooser{Out: &out}

	i, err := c.Choose("Please pick the pack you want.", []string{"First", "Second"})
	if err != nil || i != 0 {
		t.Fatalf("Expected the first option, found %d (%v)", i, err)
	}
	if !strings.Contains(out.String(), "First (non-interactive mode)") {
		t.Errorf("Expected a notice about the automatic choice, found %q", out.String())
	}
	if ok, _ := c.Confirm("Overwrite? "); !ok {
		t.Error("Non-interactive confirmation should always be yes")
	}
}
