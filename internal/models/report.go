package models

import "slices"

// ClassifiedEntry is a top-level entry after classification and before
// unicode decoding.
type ClassifiedEntry struct {
	Key          string
	DisplayValue string
	Kind         Kind
}

// Row is one numbered line of a report.
type Row struct {
	Index int
	Value string
	Key   string
}

// Frequency is one entry of the top-N frequency list.
type Frequency struct {
	Value string
	Count int
}

// Report is the result of one analysis pass. It cannot be modified after
// NewReport returns; accessors hand out copies.
type Report struct {
	rows  []Row
	top   []Frequency
	total int
	topN  int
}

// NewReport builds a Report. topN is the number of frequency entries that
// were requested, which may be more than len(top).
func NewReport(rows []Row, top []Frequency, total, topN int) Report {
	return Report{
		rows:  slices.Clone(rows),
		top:   slices.Clone(top),
		total: total,
		topN:  topN,
	}
}

// Rows returns the numbered rows in document order.
func (r Report) Rows() []Row { return slices.Clone(r.rows) }

// Top returns the most frequent values, highest count first.
func (r Report) Top() []Frequency { return slices.Clone(r.top) }

// Total is the number of top-level entries.
func (r Report) Total() int { return r.total }

// TopN is the number of frequency entries requested.
func (r Report) TopN() int { return r.topN }
