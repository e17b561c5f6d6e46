package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2023-01-15", true, 2023, time.January, 15, DateLayoutISO},
		{"European format", "15.01.2023", true, 2023, time.January, 15, DateLayoutEuropean},
		{"US format", "01/15/2023", true, 2023, time.January, 15, DateLayoutUS},
		{"Dash-separated EU", "15-01-2023", true, 2023, time.January, 15, "02-01-2006"},
		{"Full timestamp", "2023-01-15 10:30:45", true, 2023, time.January, 15, DateLayoutFull},
		{"Surrounding spaces", "  2023-01-15 ", true, 2023, time.January, 15, DateLayoutISO},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Invalid format", "not a date", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
				assert.Equal(t, tc.expectedFmt, format)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("05.01.2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)

	_, err = NormalizeDate("yesterday")
	assert.Error(t, err)

	// YYYY-MM-DD is kept as typed, calendar correctness is not checked
	got, err = NormalizeDate(" 2024-02-31 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-31", got)
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-01-05"))
	// shape only, calendar correctness is not checked
	assert.True(t, IsISODate("2024-02-31"))
	assert.False(t, IsISODate("2024-1-5"))
	assert.False(t, IsISODate("05.01.2024"))
	assert.False(t, IsISODate(""))
}

func TestIsMonthKey(t *testing.T) {
	assert.True(t, IsMonthKey("2024-01"))
	assert.True(t, IsMonthKey("1999-12"))
	assert.False(t, IsMonthKey("2024-13"))
	assert.False(t, IsMonthKey("2024-00"))
	assert.False(t, IsMonthKey("2024-1"))
	assert.False(t, IsMonthKey("2024-01-01"))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		month string
		n     int
		want  string
	}{
		{"2024-01", -1, "2023-12"},
		{"2024-03", -1, "2024-02"},
		{"2024-12", 1, "2025-01"},
		{"2024-06", 0, "2024-06"},
		{"2024-06", -18, "2022-12"},
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got, err := AddMonths(tt.month, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := AddMonths("bad", 1)
	assert.Error(t, err)
}

func TestPreviousMonthOf(t *testing.T) {
	// March 31st must not overflow back into March
	ref := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02", PreviousMonthOf(ref))

	ref = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-12", PreviousMonthOf(ref))
}

func TestTrailingMonths(t *testing.T) {
	ref := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		[]string{"2023-09", "2023-10", "2023-11", "2023-12", "2024-01", "2024-02"},
		TrailingMonths(ref, 6))

	assert.Equal(t, []string{"2024-02"}, TrailingMonths(ref, 1))
	assert.Empty(t, TrailingMonths(ref, 0))
	assert.Empty(t, TrailingMonths(ref, -3))
}

func TestStartOfMonth(t *testing.T) {
	date := time.Date(2024, time.February, 10, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(date))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2024", MonthLabel("2024-01"))
	assert.Equal(t, "garbage", MonthLabel("garbage"))
}
