// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/kraklabs/geotree/internal/ui"
)

// Prompter reads one line of user input after showing label.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// isAbort reports whether err means the user ended the input (Ctrl-C or
// Ctrl-D / end of a piped script).
func isAbort(err error) bool {
	return stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted)
}

// readerPrompter reads lines from a plain reader. Used when stdin is not a
// terminal and for one-off questions outside the shell.
type readerPrompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newReaderPrompter(in io.Reader, out io.Writer) *readerPrompter {
	return &readerPrompter{r: bufio.NewReader(in), out: out}
}

func (p *readerPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.r.ReadString('\n')
	if err != nil && (line == "" || !stderrors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *readerPrompter) Close() error { return nil }

// linePrompter is the terminal prompter: line editing, persistent history,
// Ctrl-C aborts the current prompt.
type linePrompter struct {
	state *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".geotree_history")
}

func newLinePrompter() *linePrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if f, err := os.Open(historyFile()); err == nil {
		_, _ = state.ReadHistory(f)
		_ = f.Close()
	}
	return &linePrompter{state: state}
}

func (p *linePrompter) Prompt(label string) (string, error) {
	line, err := p.state.Prompt(label)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

func (p *linePrompter) Close() error {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil { //nolint:gosec // G304: path under the home directory
			_, _ = p.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.state.Close()
}

// ask prompts until parse accepts the input. Validation messages are shown
// and the question repeated; prompt errors (including aborts) are returned.
func ask[T any](p Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := p.Prompt(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(raw)
		if err == nil {
			return v, nil
		}
		ui.Error(err.Error())
	}
}

// askDefault prompts once and returns def for an empty answer.
func askDefault(p Prompter, label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", label, def)
	} else {
		label += ": "
	}
	raw, err := p.Prompt(label)
	if err != nil {
		return "", err
	}
	if v := strings.TrimSpace(raw); v != "" {
		return v, nil
	}
	return def, nil
}
