// Package datefmt compiles user-supplied date format strings into
// anchored text matchers. The grammar is a small strftime subset:
// %Y %y %m %d %H %I %M %S %p, with %D and %E accepted as legacy
// spellings of %d and %e. Any other %x sequence is literal text.
package datefmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyFormat is returned when the format string is empty or blank.
var ErrEmptyFormat = errors.New("date format is empty")

// field identifies the date component captured by one placeholder.
type field int

const (
	fieldYear4 field = iota
	fieldYear2
	fieldMonth
	fieldDay
	fieldHour24
	fieldHour12
	fieldMinute
	fieldSecond
	fieldMeridiem
)

// twoDigitYearBase maps %y captures into the 2000s. No windowing.
const twoDigitYearBase = 2000

var placeholderFields = map[byte]field{
	'Y': fieldYear4,
	'y': fieldYear2,
	'm': fieldMonth,
	'd': fieldDay,
	'H': fieldHour24,
	'I': fieldHour12,
	'M': fieldMinute,
	'S': fieldSecond,
	'p': fieldMeridiem,
}

// meridiemTokens lists the recognized AM/PM spellings. Locale-specific
// tokens can be appended here.
var meridiemTokens = []string{"AM", "PM"}

var fieldPatterns = map[field]string{
	fieldYear4:  `(\d{4})`,
	fieldYear2:  `(\d{2})`,
	fieldMonth:  `(\d{1,2})`,
	fieldDay:    `(\d{1,2})`,
	fieldHour24: `(\d{1,2})`,
	fieldHour12: `(\d{1,2})`,
	fieldMinute: `(\d{1,2})`,
	fieldSecond: `(\d{1,2})`,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Matcher is a compiled date format.
type Matcher struct {
	format string
	re     *regexp.Regexp
	fields []field
}

// MatchResult is the outcome of matching one text against one format.
type MatchResult struct {
	Matched bool       `json:"matched"`
	Value   *time.Time `json:"value,omitempty"`
	Reason  string     `json:"reason,omitempty"`
}

// Compile translates a format string into an anchored, case-insensitive
// matcher. Placeholder positions in the format establish the order in
// which captures are read back. Placeholders are first replaced with
// marker tokens that cannot occur in literal text, the remaining literal
// text is regex-escaped, and the markers are then substituted with their
// capturing sub-patterns, so user-supplied text can never inject pattern
// syntax.
func Compile(format string) (*Matcher, error) {
	if strings.TrimSpace(format) == "" {
		return nil, ErrEmptyFormat
	}

	var (
		fields []field
		b      strings.Builder
	)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}

		spec := normalizePlaceholder(format[i+1])
		f, ok := placeholderFields[spec]
		if !ok {
			// Unknown %x sequences are literal text.
			b.WriteByte('%')
			b.WriteByte(spec)
			i++
			continue
		}

		fields = append(fields, f)
		b.WriteString(marker(len(fields) - 1))
		i++
	}

	pattern := regexp.QuoteMeta(b.String())
	pattern = whitespaceRun.ReplaceAllString(pattern, `\s*`)
	for i, f := range fields {
		pattern = strings.Replace(pattern, marker(i), subPattern(f), 1)
	}

	re, err := regexp.Compile(`(?i)^` + pattern + `$`)
	if err != nil {
		return nil, fmt.Errorf("compile date format %q: %w", format, err)
	}

	return &Matcher{format: format, re: re, fields: fields}, nil
}

// Format returns the source format string.
func (m *Matcher) Format() string {
	return m.format
}

// Match applies the compiled format to text. Fields absent from the
// format default to the year of now, January 1st, midnight. Candidate
// values that would not form a real calendar date (day 31 in February,
// hour 24) are rejected rather than normalized. The reference time is an
// explicit input so matching stays a pure function.
//
// When both %I and %p appear, the captured hour is used as-is; no PM
// adjustment is applied.
func (m *Matcher) Match(text string, now time.Time) MatchResult {
	groups := m.re.FindStringSubmatch(strings.TrimSpace(text))
	if groups == nil {
		return MatchResult{Reason: "text does not match format"}
	}

	year := now.Year()
	month, day := 1, 1
	hour, minute, second := 0, 0, 0

	for i, f := range m.fields {
		if f == fieldMeridiem {
			continue
		}

		n, err := strconv.Atoi(groups[i+1])
		if err != nil {
			return MatchResult{Reason: "non-numeric capture"}
		}

		switch f {
		case fieldYear4:
			year = n
		case fieldYear2:
			year = twoDigitYearBase + n
		case fieldMonth:
			month = n
		case fieldDay:
			day = n
		case fieldHour24, fieldHour12:
			hour = n
		case fieldMinute:
			minute = n
		case fieldSecond:
			second = n
		case fieldMeridiem:
		}
	}

	if month < 1 || month > 12 {
		return MatchResult{Reason: fmt.Sprintf("month %d out of range", month)}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return MatchResult{Reason: "values do not form a valid calendar date"}
	}

	return MatchResult{Matched: true, Value: &t}
}

// TestFormats matches one sample text against each format in order and
// returns the per-format results. Formats that do not compile report the
// compile error as the reason.
func TestFormats(sample string, formats []string, now time.Time) []MatchResult {
	results := make([]MatchResult, 0, len(formats))
	for _, format := range formats {
		m, err := Compile(format)
		if err != nil {
			results = append(results, MatchResult{Reason: err.Error()})
			continue
		}
		results = append(results, m.Match(sample, now))
	}

	return results
}

// normalizePlaceholder folds the legacy upper-case spellings onto their
// canonical forms.
func normalizePlaceholder(c byte) byte {
	switch c {
	case 'D':
		return 'd'
	case 'E':
		return 'e'
	default:
		return c
	}
}

// marker builds a placeholder stand-in that survives regex escaping and
// cannot collide with literal format text.
func marker(i int) string {
	return "\x00" + strconv.Itoa(i) + "\x00"
}

func subPattern(f field) string {
	if f == fieldMeridiem {
		return "(" + strings.Join(meridiemTokens, "|") + ")"
	}

	return fieldPatterns[f]
}
