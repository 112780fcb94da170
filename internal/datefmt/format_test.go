package datefmt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/scrapefeed/internal/datefmt"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestCompile_EmptyFormat(t *testing.T) {
	_, err := datefmt.Compile("")
	require.ErrorIs(t, err, datefmt.ErrEmptyFormat)

	_, err = datefmt.Compile("   ")
	require.ErrorIs(t, err, datefmt.ErrEmptyFormat)
}

func TestMatch_FullDateTime(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d %H:%M")
	require.NoError(t, err)

	result := m.Match("2024-03-05 14:30", testNow)
	require.True(t, result.Matched)
	require.NotNil(t, result.Value)
	assert.Equal(t, time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC), *result.Value)
}

func TestMatch_DateOnly_DefaultsMidnight(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	result := m.Match("2023-12-01", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), *result.Value)
}

func TestMatch_TimeOnly_DefaultsToReferenceYear(t *testing.T) {
	m, err := datefmt.Compile("%H:%M:%S")
	require.NoError(t, err)

	result := m.Match("09:05:59", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, time.Date(2024, time.January, 1, 9, 5, 59, 0, time.UTC), *result.Value)
}

func TestMatch_TwoDigitYear(t *testing.T) {
	m, err := datefmt.Compile("%d/%m/%y")
	require.NoError(t, err)

	result := m.Match("5/3/24", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, 2024, result.Value.Year())
	assert.Equal(t, time.March, result.Value.Month())
	assert.Equal(t, 5, result.Value.Day())
}

func TestMatch_SingleDigitComponents(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	result := m.Match("2024-3-5", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *result.Value)
}

func TestMatch_InvalidCalendarDateRejected(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	// Structurally fine, but February has no 31st. The value must be
	// rejected, not normalized to March.
	result := m.Match("2024-02-31", testNow)
	assert.False(t, result.Matched)
	assert.Nil(t, result.Value)
	assert.NotEmpty(t, result.Reason)
}

func TestMatch_MonthOutOfRange(t *testing.T) {
	m, err := datefmt.Compile("%m/%d/%Y")
	require.NoError(t, err)

	result := m.Match("13/01/2024", testNow)
	assert.False(t, result.Matched)
	assert.Contains(t, result.Reason, "month")
}

func TestMatch_HourOutOfRange(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d %H:%M")
	require.NoError(t, err)

	result := m.Match("2024-03-05 24:00", testNow)
	assert.False(t, result.Matched)
}

func TestMatch_TextMismatch(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	for _, text := range []string{"March 5, 2024", "2024-03-05 extra", "", "2024-03"} {
		result := m.Match(text, testNow)
		assert.False(t, result.Matched, "text %q should not match", text)
	}
}

func TestMatch_SurroundingWhitespaceTrimmed(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	result := m.Match("  2024-03-05\n", testNow)
	assert.True(t, result.Matched)
}

func TestMatch_FlexibleInteriorWhitespace(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d %H:%M")
	require.NoError(t, err)

	result := m.Match("2024-03-05   14:30", testNow)
	assert.True(t, result.Matched)
}

func TestMatch_Meridiem(t *testing.T) {
	m, err := datefmt.Compile("%I:%M %p")
	require.NoError(t, err)

	result := m.Match("3:45 PM", testNow)
	require.True(t, result.Matched)
	// The meridiem is recognized but the captured hour is used as-is.
	assert.Equal(t, 3, result.Value.Hour())

	result = m.Match("3:45 pm", testNow)
	assert.True(t, result.Matched, "meridiem matching is case-insensitive")

	result = m.Match("3:45 XM", testNow)
	assert.False(t, result.Matched)
}

func TestMatch_LegacyPlaceholderSpellings(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%D")
	require.NoError(t, err)

	result := m.Match("2024-03-05", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, 5, result.Value.Day())
}

func TestMatch_UnknownPlaceholderIsLiteral(t *testing.T) {
	m, err := datefmt.Compile("%Q %Y")
	require.NoError(t, err)

	result := m.Match("%Q 2024", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, 2024, result.Value.Year())
}

func TestMatch_LiteralTextIsEscaped(t *testing.T) {
	m, err := datefmt.Compile("[%Y] (%m.%d)")
	require.NoError(t, err)

	result := m.Match("[2024] (03.05)", testNow)
	require.True(t, result.Matched)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *result.Value)

	// The brackets must match literally, not as regex character classes.
	result = m.Match("2 (03.05)", testNow)
	assert.False(t, result.Matched)
}

func TestMatch_Deterministic(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)

	first := m.Match("2024-03-05", testNow)
	second := m.Match("2024-03-05", testNow)
	require.True(t, first.Matched)
	require.True(t, second.Matched)
	assert.Equal(t, *first.Value, *second.Value)
}

func TestFormats_OrderPreserved(t *testing.T) {
	formats := []string{"%d/%m/%Y", "%Y-%m-%d", ""}
	results := datefmt.TestFormats("2024-03-05", formats, testNow)
	require.Len(t, results, 3)

	assert.False(t, results[0].Matched)
	assert.True(t, results[1].Matched)
	assert.False(t, results[2].Matched)
	assert.NotEmpty(t, results[2].Reason, "uncompilable format reports its error")
}

func TestMatcher_Format(t *testing.T) {
	m, err := datefmt.Compile("%Y-%m-%d")
	require.NoError(t, err)
	assert.Equal(t, "%Y-%m-%d", m.Format())
}
