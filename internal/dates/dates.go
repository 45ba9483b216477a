// Package dates resolves the date strings published by each site into
// absolute, timezone-aware timestamps. Every site dialect is its own
// function so its quirks stay isolated and testable.
package dates

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Dialect selects which site-specific parsing rules apply.
type Dialect string

const (
	// RelativePT covers Valor/O Globo strings: "Há 2 horas", "ontem", "hoje",
	// falling back to "02/01/2006 15:04".
	RelativePT Dialect = "relative-pt"
	// ClockBR is the plain "02/01/2006 15:04" form.
	ClockBR Dialect = "clock-br"
	// ISOClock is Folha's datetime attribute, "2006-01-02 15:04:05".
	ISOClock Dialect = "iso-clock"
	// MonthEN is the Washington Post's "January 2, 2006".
	MonthEN Dialect = "month-en"
	// DotAbbrevPT is UOL's "02.jan.2006" with pt-BR month abbreviations.
	DotAbbrevPT Dialect = "dot-abbrev-pt"
	// CompositeBR is Estadão's "Por 02/01/2006, 15h04".
	CompositeBR Dialect = "composite-br"
)

// Normalizer applies dialect rules in a fixed source timezone. The clock is
// injectable so fallback and relative arithmetic are testable.
type Normalizer struct {
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// NewNormalizer builds a normalizer for one source timezone.
func NewNormalizer(loc *time.Location, logger *slog.Logger) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc, now: time.Now, logger: logger}
}

// WithClock substitutes the wall clock. Used by tests.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	clone := *n
	clone.now = now
	return &clone
}

// Location returns the source timezone the normalizer resolves into.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Now is the current instant in the source timezone, sub-second precision
// dropped.
func (n *Normalizer) Now() time.Time {
	return n.now().In(n.loc).Truncate(time.Second)
}

// Normalize resolves raw into an absolute timestamp. It never fails: input
// that no rule of the dialect accepts resolves to Now, with a warning.
func (n *Normalizer) Normalize(raw string, d Dialect) time.Time {
	raw = strings.TrimSpace(raw)

	var (
		ts time.Time
		ok bool
	)
	switch d {
	case RelativePT:
		if ts, ok = ParseRelativePT(raw, n.Now()); !ok {
			ts, ok = ParseClockBR(raw, n.loc)
		}
	case ClockBR:
		ts, ok = ParseClockBR(raw, n.loc)
	case ISOClock:
		ts, ok = ParseISOClock(raw, n.loc)
	case MonthEN:
		ts, ok = ParseMonthEN(raw, n.loc)
	case DotAbbrevPT:
		ts, ok = ParseDotAbbrevPT(raw, n.loc)
	case CompositeBR:
		ts, ok = ParseCompositeBR(raw, n.loc)
	}

	if !ok {
		if n.logger != nil {
			n.logger.Warn("unrecognized date format, using current time",
				"raw", raw, "dialect", string(d))
		}
		return n.Now()
	}
	return ts
}

var relativeDaysExpr = regexp.MustCompile(`^Há\s+(\d+)\s+dias?\b`)

// ParseRelativePT handles the relative Portuguese forms used on Globo feed
// pages. "Há N minutos/hora(s)" is the current instant; "Há N dia(s)" keeps
// the wall time N days back; "ontem" and "hoje" resolve to midnight.
func ParseRelativePT(raw string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(raw) {
	case "ontem":
		y := now.AddDate(0, 0, -1)
		return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, now.Location()), true
	case "hoje":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	}

	if strings.HasPrefix(raw, "Há ") {
		if m := relativeDaysExpr.FindStringSubmatch(raw); m != nil {
			days, err := strconv.Atoi(m[1])
			if err != nil {
				return time.Time{}, false
			}
			return now.AddDate(0, 0, -days), true
		}
		if strings.Contains(raw, "minuto") || strings.Contains(raw, "hora") {
			return now, true
		}
	}

	return time.Time{}, false
}

// ParseClockBR parses "02/01/2006 15:04" in the source timezone.
func ParseClockBR(raw string, loc *time.Location) (time.Time, bool) {
	ts, err := time.ParseInLocation("02/01/2006 15:04", raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ParseISOClock parses "2006-01-02 15:04:05" in the source timezone.
func ParseISOClock(raw string, loc *time.Location) (time.Time, bool) {
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ParseMonthEN parses "January 2, 2006" in the source timezone.
func ParseMonthEN(raw string, loc *time.Location) (time.Time, bool) {
	ts, err := time.ParseInLocation("January 2, 2006", raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ptMonths maps the lowercase three-letter pt-BR abbreviations. Lookup
// misses resolve to January; that quirk is long-standing upstream behavior
// and callers rely on it not erroring.
var ptMonths = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"abr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"set": time.September,
	"out": time.October,
	"nov": time.November,
	"dez": time.December,
}

var dotAbbrevExpr = regexp.MustCompile(`^(\d{1,2})\.([a-zà-ú]{3})\.(\d{4})$`)

// ParseDotAbbrevPT parses "02.jan.2006" at midnight in the source timezone.
func ParseDotAbbrevPT(raw string, loc *time.Location) (time.Time, bool) {
	m := dotAbbrevExpr.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	month, known := ptMonths[m[2]]
	if !known {
		month = time.January
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), true
}

// ParseCompositeBR parses Estadão bylines of the form "Por 02/01/2006,
// 15h04": the "Por" prefix is dropped and the hour separator letter is
// rewritten to a colon before regular parsing.
func ParseCompositeBR(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Por"))

	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}

	datePart := strings.TrimSpace(parts[0])
	timePart := strings.ReplaceAll(strings.TrimSpace(parts[1]), "h", ":")

	return ParseClockBR(fmt.Sprintf("%s %s", datePart, timePart), loc)
}
