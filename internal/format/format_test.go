package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0b"},
		{"bytes_max", 1023, "1023b"},
		{"one_kb", 1024, "1.0kb"},
		{"one_and_half_kb", 1536, "1.5kb"},
		{"one_mb", 1024 * 1024, "1.0mb"},
		{"one_and_half_gb", int64(1.5 * 1024 * 1024 * 1024), "1.5gb"},
		{"two_tb", 2 * 1024 * 1024 * 1024 * 1024, "2.0tb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBytes(tc.input))
		})
	}
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0ms"},
		{"sub_second", 850, "850ms"},
		{"seconds", 1200, "1.2s"},
		{"minutes", 270000, "4.5m"},
		{"hours", 2 * 3600 * 1000, "2.0h"},
		{"days", 3 * 24 * 3600 * 1000, "3.0d"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMillis(tc.input))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0"},
		{"hundreds", 999, "999"},
		{"thousands", 1000, "1,000"},
		{"millions", 12345678, "12,345,678"},
		{"negative", -1234567, "-1,234,567"},
		{"min_int64", math.MinInt64, "-9,223,372,036,854,775,808"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatNumber(tc.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "81%", FormatPercent(81))
	assert.Equal(t, "0%", FormatPercent(0))
}

func TestFormatLoad(t *testing.T) {
	assert.Equal(t, "1.50/1.00/0.50", FormatLoad([]float64{1.5, 1, 0.5}))
	assert.Equal(t, "2.25", FormatLoad([]float64{2.25}))
	assert.Equal(t, "-", FormatLoad(nil))
}
