package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeries_IsValid(t *testing.T) {
	tests := []struct {
		series  Series
		isValid bool
	}{
		{SeriesOpportunity, true},
		{SeriesOffer, true},
		{SeriesSaleOrder, true},
		{SeriesInvoice, true},
		{Series("XXX"), false},
		{Series(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.series), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.series.IsValid())
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		series Series
		year   int
		seq    int64
		want   string
	}{
		{"first number", SeriesOpportunity, 2025, 1, "OPP-2025-001"},
		{"two digits", SeriesOffer, 2025, 42, "OFF-2025-042"},
		{"three digits", SeriesSaleOrder, 2024, 999, "ORD-2024-999"},
		{"widens past padding", SeriesInvoice, 2025, 1000, "INV-2025-1000"},
		{"keeps widening", SeriesInvoice, 2025, 12345, "INV-2025-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.series, tt.year, tt.seq))
		})
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "OFF-2025-", Prefix(SeriesOffer, 2025))
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int64
		ok     bool
	}{
		{"well formed", "OPP-2025-007", 7, true},
		{"wide sequence", "INV-2025-1042", 1042, true},
		{"zero", "ORD-2025-000", 0, true},
		{"no separator", "garbage", 0, false},
		{"empty suffix", "OFF-2025-", 0, false},
		{"non numeric suffix", "OFF-2025-abc", 0, false},
		{"negative suffix", "OFF-2025--3", 0, false},
		{"empty string", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := ParseSequence(tt.number)
			assert.Equal(t, tt.want, seq)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
