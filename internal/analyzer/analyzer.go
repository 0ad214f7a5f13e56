package analyzer

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/models"
)

// DefaultTopN is the number of most frequent values a report lists.
const DefaultTopN = config.DefaultTop

// Analyzer turns a parsed document into a report.
type Analyzer struct {
	topN   int
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer with the default settings.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		topN:   DefaultTopN,
		logger: slog.New(slog.DiscardHandler),
	}
}

// NewAnalyzerWithConfig creates an Analyzer using cfg. A nil logger
// discards diagnostics.
func NewAnalyzerWithConfig(cfg *config.Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	topN := cfg.Report.Top
	if topN < 1 {
		topN = DefaultTopN
	}
	return &Analyzer{topN: topN, logger: logger}
}

// Analyze builds the report for doc.
func (a *Analyzer) Analyze(doc models.Document) (models.Report, error) {
	report, err := BuildReport(doc, a.topN)
	if err != nil {
		a.logger.Debug("analysis failed", "entries", doc.Len(), "error", err)
		return models.Report{}, err
	}
	a.logger.Debug("analysis complete",
		"entries", report.Total(),
		"top_values", len(report.Top()),
	)
	return report, nil
}

// ClassifyDocument classifies every top-level entry in document order.
func ClassifyDocument(doc models.Document) []models.ClassifiedEntry {
	entries := doc.Entries()
	classified := make([]models.ClassifiedEntry, len(entries))
	for i, e := range entries {
		classified[i] = models.ClassifiedEntry{
			Key:          e.Key,
			DisplayValue: Classify(e.Value),
			Kind:         e.Value.Kind(),
		}
	}
	return classified
}

// BuildReport classifies, tallies and decodes doc. The tally counts the
// classified values before unicode decoding; the rows show them after.
// A malformed escape fails the whole report.
func BuildReport(doc models.Document, topN int) (models.Report, error) {
	classified := ClassifyDocument(doc)
	table := Tally(classified)

	rows := make([]models.Row, len(classified))
	for i, e := range classified {
		value := e.DisplayValue
		if strings.Contains(value, EscapeMarker) {
			decoded, err := DecodeUnicode(value)
			if err != nil {
				return models.Report{}, decodeError(e.Key, err)
			}
			value = decoded
		}
		rows[i] = models.Row{Index: i + 1, Value: value, Key: e.Key}
	}

	return models.NewReport(rows, table.Top(topN), len(classified), topN), nil
}

func decodeError(key string, err error) error {
	var escErr *EscapeError
	if stderrors.As(err, &escErr) {
		return errors.NewDecodeError(fmt.Sprintf("value of key %q: %s", key, escErr.Error()), errors.ErrInvalidEscape)
	}
	return errors.NewDecodeError(fmt.Sprintf("value of key %q", key), err)
}
