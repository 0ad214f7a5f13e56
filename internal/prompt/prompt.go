// Package prompt reads line-based answers from an interactive terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter writes questions to out and reads one line per answer from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

type answer struct {
	line string
	err  error
}

// Ask writes label and returns the next input line without its line ending.
// It returns io.EOF once input is exhausted and ctx.Err() if ctx is done.
// A Prompter must not be used again after Ask returned a context error.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if label != "" {
		if _, err := io.WriteString(p.out, label); err != nil {
			return "", err
		}
	}

	// Reads from a terminal cannot be interrupted, so wait for either.
	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a = <-ch:
	}

	if a.err != nil && (a.err != io.EOF || a.line == "") {
		return "", a.err
	}
	return strings.TrimRight(a.line, "\r\n"), nil
}

// Println writes a line to the prompt's output.
func (p *Prompter) Println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

// Printf writes formatted text to the prompt's output.
func (p *Prompter) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

// Out returns the writer answers are prompted on.
func (p *Prompter) Out() io.Writer { return p.out }

// CleanPath trims whitespace and the quotes terminals add around dragged
// and dropped paths.
func CleanPath(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}
