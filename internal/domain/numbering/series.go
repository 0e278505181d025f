// Package numbering defines the document number series used across the sales
// pipeline and the pure formatting/parsing rules for sequential numbers of the
// form PREFIX-YYYY-NNN.
package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Series identifies a document-number namespace by its prefix
type Series string

const (
	SeriesOpportunity Series = "OPP"
	SeriesOffer       Series = "OFF"
	SeriesSaleOrder   Series = "ORD"
	SeriesInvoice     Series = "INV"
)

// IsValid checks if the series is a known document series
func (s Series) IsValid() bool {
	switch s {
	case SeriesOpportunity, SeriesOffer, SeriesSaleOrder, SeriesInvoice:
		return true
	}
	return false
}

// String returns the series prefix
func (s Series) String() string {
	return string(s)
}

// Format renders a document number for a series, year and sequence value.
// The sequence is zero-padded to at least 3 digits and widens naturally for
// values of 1000 and above.
func Format(series Series, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", series, year, seq)
}

// Prefix returns the "PREFIX-YYYY-" part shared by all numbers of a series/year
func Prefix(series Series, year int) string {
	return fmt.Sprintf("%s-%d-", series, year)
}

// ParseSequence extracts the trailing sequence value from a stored document
// number. An absent or unparsable suffix yields 0: the caller continues from a
// zero high-water mark instead of failing the enclosing creation.
func ParseSequence(number string) (int64, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	seq, err := strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// Generator allocates the next document number for a series. Implementations
// must serialize allocations per {series, year} so that two concurrent
// creations never receive the same number, and must reserve the number inside
// the same transaction that creates the owning document.
type Generator interface {
	Next(ctx context.Context, series Series) (string, error)
}
