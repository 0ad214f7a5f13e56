package analyzer

import (
	"maps"
	"slices"

	"github.com/mcncl/jsonpeek/internal/models"
)

// FrequencyTable counts display values. It remembers the order in which
// values were first seen; Top uses that order to break ties.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Tally counts the pre-decode display value of every entry.
func Tally(entries []models.ClassifiedEntry) *FrequencyTable {
	t := NewFrequencyTable()
	for _, e := range entries {
		t.Add(e.DisplayValue)
	}
	return t
}

// Add increments the count of value.
func (t *FrequencyTable) Add(value string) {
	if _, seen := t.counts[value]; !seen {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

// Count returns how often value was added.
func (t *FrequencyTable) Count(value string) int { return t.counts[value] }

// Len returns the number of distinct values.
func (t *FrequencyTable) Len() int { return len(t.order) }

// Counts returns a copy of the value to count mapping.
func (t *FrequencyTable) Counts() map[string]int { return maps.Clone(t.counts) }

// Top returns at most n entries ordered by count, highest first. Equal
// counts keep first-seen order.
func (t *FrequencyTable) Top(n int) []models.Frequency {
	if n <= 0 || len(t.order) == 0 {
		return nil
	}
	all := make([]models.Frequency, len(t.order))
	for i, v := range t.order {
		all[i] = models.Frequency{Value: v, Count: t.counts[v]}
	}
	slices.SortStableFunc(all, func(a, b models.Frequency) int {
		return b.Count - a.Count
	})
	return all[:min(n, len(all))]
}
