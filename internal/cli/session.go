// Package cli runs analysis passes for the command line, either once per
// path or in an interactive prompt loop.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"

	"github.com/mcncl/jsonpeek/internal/analyzer"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/formatter"
	"github.com/mcncl/jsonpeek/internal/logfile"
	"github.com/mcncl/jsonpeek/internal/parser"
	"github.com/mcncl/jsonpeek/internal/prompt"
)

// PathPrompt asks for the next file in the interactive loop.
const PathPrompt = "Enter the path of a JSON file to analyze (Q then Enter to quit): "

// Session analyzes JSON files and prints their reports.
type Session struct {
	prompt   *prompt.Prompter
	analyzer *analyzer.Analyzer
	logs     *logfile.Writer
	logger   *slog.Logger
}

// NewSession creates a Session reading paths from in and printing to out.
// A nil logs writer disables log files.
func NewSession(in io.Reader, out io.Writer, a *analyzer.Analyzer, logs *logfile.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		prompt:   prompt.New(in, out),
		analyzer: a,
		logs:     logs,
		logger:   logger,
	}
}

// Run prompts for paths until the user enters q or input ends. Failed
// passes are reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	for {
		answer, err := s.prompt.Ask(ctx, PathPrompt)
		if stderrors.Is(err, io.EOF) {
			s.prompt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		path := prompt.CleanPath(answer)
		if strings.EqualFold(path, "q") {
			return nil
		}
		if path == "" {
			continue
		}

		if err := s.AnalyzeFile(path); err != nil {
			s.logger.Debug("analysis pass failed", "path", path, "error", err)
			s.prompt.Println(errors.UserFriendlyError(err))
		}
		s.prompt.Println()
	}
}

// AnalyzeFile runs one pass over path: parse, build the report, print it
// and write the log file. Nothing is printed when parsing or decoding fails.
func (s *Session) AnalyzeFile(path string) error {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	report, err := s.analyzer.Analyze(doc)
	if err != nil {
		return err
	}

	if err := formatter.Text(s.prompt.Out(), report); err != nil {
		return err
	}

	if s.logs == nil {
		return nil
	}
	result, err := s.logs.Write(path, report)
	if err != nil {
		return err
	}
	s.logger.Debug("log file written", "path", result.Path, "markdown", result.MarkdownPath)

	s.prompt.Printf("\nLog file written: %s\n", result.Path)
	if result.MarkdownPath != "" {
		s.prompt.Printf("Markdown report written: %s\n", result.MarkdownPath)
	}
	return nil
}
