// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks the user for the run inputs on the terminal and shows
// the final status messages.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// ErrCancelled is returned when the user interrupts a prompt (Ctrl-C or
// end of input) or leaves a numeric prompt empty.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter collects inputs and shows notifications.
type Prompter interface {
	AskText(label string) (string, error)
	AskInt(label string) (int, error)
	Notify(title, message string)
}

// lineReader is the part of *readline.Instance the Terminal uses.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// Terminal is a Prompter backed by a readline session.
type Terminal struct {
	rl  lineReader
	out io.Writer
}

var _ Prompter = (*Terminal)(nil)

// NewTerminal opens a readline session on in and out. Nil values fall back
// to the process stdin and stdout.
func NewTerminal(in io.ReadCloser, out io.Writer) (*Terminal, error) {
	cfg := &readline.Config{
		InterruptPrompt: "^C",
		HistoryLimit:    -1,
	}
	if in != nil {
		cfg.Stdin = in
	}
	if out != nil {
		cfg.Stdout = out
		cfg.Stderr = out
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening terminal prompt: %w", err)
	}
	if out == nil {
		out = rl.Stdout()
	}
	return &Terminal{rl: rl, out: out}, nil
}

// AskText shows label and returns the trimmed answer. An empty answer is
// not an error.
func (t *Terminal) AskText(label string) (string, error) {
	t.rl.SetPrompt(label + " ")
	line, err := t.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskInt asks until the answer parses as an integer. An empty answer
// cancels.
func (t *Terminal) AskInt(label string) (int, error) {
	for {
		answer, err := t.AskText(label)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, ErrCancelled
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, nil
		}
		t.Notify("Illegal value", "Not an integer. Please try again.")
	}
}

// Notify writes a one-line message.
func (t *Terminal) Notify(title, message string) {
	fmt.Fprintf(t.out, "%s: %s\n", title, message)
}

// Close releases the terminal.
func (t *Terminal) Close() error {
	return t.rl.Close()
}
