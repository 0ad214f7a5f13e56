// Package logfile persists analysis reports next to the user's files.
//
// Each analysis produces one log file named <prefix>_<yyyyMMdd>_<suffix>.log
// holding a header, the text report exactly as printed to the console, and
// a short footer. A Markdown copy can be written alongside it.
package logfile

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/formatter"
	"github.com/mcncl/jsonpeek/internal/models"
)

// Footer lines close every log file.
const (
	FooterNote        = "Note: keep this log file; it is useful for later troubleshooting and development."
	FooterAttribution = "Log generated by jsonpeek."
)

const (
	dateLayout   = "20060102"
	headerLayout = time.DateTime
	maxAttempts  = 5
)

// Clock returns the current time.
type Clock func() time.Time

// SuffixFunc returns the random part of a log file name.
type SuffixFunc func() string

// DirResolver returns the directory log files are written to.
type DirResolver func() (string, error)

// Writer writes report log files. The zero value is not usable; build one
// with New or fill every field.
type Writer struct {
	Dir      DirResolver
	Clock    Clock
	Suffix   SuffixFunc
	Prefix   string
	Markdown bool
}

// Result lists the files written for one report.
type Result struct {
	Path         string
	MarkdownPath string
}

// New creates a Writer from the log section of cfg.
func New(cfg *config.Config) *Writer {
	dir := cfg.LogDir()
	return &Writer{
		Dir:      func() (string, error) { return dir, nil },
		Clock:    time.Now,
		Suffix:   RandomSuffix(cfg.Log.SuffixLength),
		Prefix:   cfg.Log.Prefix,
		Markdown: cfg.Log.Markdown,
	}
}

// RandomSuffix returns a SuffixFunc producing n hex characters taken from a
// random UUID. n is clamped to the 32 characters a UUID provides.
func RandomSuffix(n int) SuffixFunc {
	n = max(1, min(n, config.MaxSuffixLength))
	return func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
	}
}

// FileName returns the log file name for the given time and suffix.
func (w *Writer) FileName(at time.Time, suffix string) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = config.DefaultLogPrefix
	}
	return fmt.Sprintf("%s_%s_%s.log", prefix, at.Format(dateLayout), suffix)
}

// Content returns the bytes of a log file for report.
func Content(source string, at time.Time, report models.Report) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Analyzed at: %s\n", at.Format(headerLayout))
	fmt.Fprintf(&b, "File: %s\n", source)
	b.WriteString(formatter.Render(report))
	b.WriteString(FooterNote + "\n")
	b.WriteString(FooterAttribution + "\n")
	return b.Bytes()
}

// Write stores report in a new log file and, when enabled, a Markdown copy.
// An existing file is never overwritten; a new suffix is drawn instead.
func (w *Writer) Write(source string, report models.Report) (Result, error) {
	dir, err := w.Dir()
	if err != nil {
		return Result{}, errors.NewOutputError("failed to resolve log directory", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return Result{}, errors.NewOutputError(fmt.Sprintf("failed to create log directory '%s'", dir), err)
	}

	at := w.Clock()
	content := Content(source, at, report)

	var path string
	for range maxAttempts {
		path = filepath.Join(dir, w.FileName(at, w.Suffix()))
		err = writeNew(path, content)
		if !stderrors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return Result{}, errors.NewOutputError(fmt.Sprintf("failed to write log file '%s'", path), err)
	}

	result := Result{Path: path}
	if !w.Markdown {
		return result, nil
	}

	mdPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
	var md bytes.Buffer
	if err := formatter.Markdown(&md, report, formatter.Meta{Source: source, AnalyzedAt: at}); err != nil {
		return result, err
	}
	if err := writeNew(mdPath, md.Bytes()); err != nil {
		return result, errors.NewOutputError(fmt.Sprintf("failed to write markdown report '%s'", mdPath), err)
	}
	result.MarkdownPath = mdPath
	return result, nil
}

func writeNew(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
