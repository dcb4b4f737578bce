package cmdshared

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/dixonwille/wmenu.v4"
)

var (
	ErrTooManyAttempts    = errors.New("too many invalid selections")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Chooser asks the operator to pick between options and to confirm actions
type Chooser interface {
	// Choose returns the 0-based index of the chosen option
	Choose(prompt string, options []string) (int, error)
	Confirm(prompt string) (bool, error)
}

// LineChooser prints a numbered list and reads a 1-based index per line, re-prompting on bad input.
// MaxAttempts of 0 re-prompts forever.
type LineChooser struct {
	out         io.Writer
	in          *bufio.Reader
	MaxAttempts int
}

func NewLineChooser(in io.Reader, out io.Writer, maxAttempts int) *LineChooser {
	return &LineChooser{
		out:         out,
		in:          bufio.NewReader(in),
		MaxAttempts: maxAttempts,
	}
}

func (c *LineChooser) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *LineChooser) Choose(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	_, _ = fmt.Fprintln(c.out, prompt)
	for i, v := range options {
		_, _ = fmt.Fprintf(c.out, "%d: %s\n", i+1, v)
	}

	for attempts := 1; ; attempts++ {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1, nil
		}
		if c.MaxAttempts > 0 && attempts >= c.MaxAttempts {
			return 0, fmt.Errorf("%w: gave up after %d attempts", ErrTooManyAttempts, attempts)
		}
		_, _ = fmt.Fprintf(c.out, "Invalid input, please enter a number between 1 and %d.\n", len(options))
	}
}

// Confirm asks a yes/no question; anything not starting with n counts as yes
func (c *LineChooser) Confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprint(c.out, prompt)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	return !strings.HasPrefix(strings.ToLower(line), "n"), nil
}

// MenuChooser uses a wmenu menu with a Cancel entry, re-prompting until the input is valid
type MenuChooser struct {
	confirm *LineChooser
}

func NewMenuChooser() *MenuChooser {
	return &MenuChooser{confirm: NewLineChooser(os.Stdin, os.Stdout, 0)}
}

func (c *MenuChooser) Choose(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	menu := wmenu.NewMenu(prompt)
	menu.LoopOnInvalid()
	menu.Option("Cancel", nil, false, nil)
	for i, v := range options {
		menu.Option(v, i, i == 0, nil)
	}

	chosen := -1
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return ErrSelectionCancelled
		}
		i, ok := menuRes[0].Value.(int)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		chosen = i
		return nil
	})
	if err := menu.Run(); err != nil {
		return 0, err
	}
	if chosen < 0 {
		return 0, ErrSelectionCancelled
	}
	return chosen, nil
}

func (c *MenuChooser) Confirm(prompt string) (bool, error) {
	return c.confirm.Confirm(prompt)
}

// AutoChooser never prompts: it takes the first option and confirms everything
type AutoChooser struct {
	Out io.Writer
}

func (c AutoChooser) Choose(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	if c.Out != nil {
		_, _ = fmt.Fprintf(c.Out, "%s %s (non-interactive mode)\n", prompt, options[0])
	}
	return 0, nil
}

func (c AutoChooser) Confirm(prompt string) (bool, error) {
	if c.Out != nil {
		_, _ = fmt.Fprintf(c.Out, "%sY (non-interactive mode)\n", prompt)
	}
	return true, nil
}

// NewChooser picks the chooser for the current run: no prompts in non-interactive mode,
// a bounded line prompt when attempts is limited, otherwise a menu
func NewChooser(nonInteractive bool, attempts int) Chooser {
	if nonInteractive {
		return AutoChooser{Out: os.Stdout}
	}
	if attempts > 0 {
		return NewLineChooser(os.Stdin, os.Stdout, attempts)
	}
	return NewMenuChooser()
}
