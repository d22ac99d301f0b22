package command

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"ledgerbot/internal/core"
)

// ReferenceTimezone is the civil timezone in which symbolic ranges and
// explicit dates are interpreted.
const ReferenceTimezone = "Asia/Taipei"

// ErrUnsupportedRange is returned for range keys outside the grammar.
var ErrUnsupportedRange = errors.New("unsupported range")

var reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Range is a half-open interval [Start, End) of instants. Both bounds
// carry the location they were resolved in.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartTS and EndTS render the bounds in the store's timestamp layout
// for lexical filtering.
func (r Range) StartTS() string { return core.FormatTimestamp(r.Start) }
func (r Range) EndTS() string   { return core.FormatTimestamp(r.End) }

// Location loads the reference timezone. Callers should treat a failure
// as fatal at startup; the tzdata for Asia/Taipei ships with the
// platform.
func Location() (*time.Location, error) {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone %s: %w", ReferenceTimezone, err)
	}
	return loc, nil
}

// Resolve maps a range key to a half-open interval in now's location.
// Supported keys: 今天, 昨天, 本月, and explicit YYYY-MM-DD dates.
func Resolve(key string, now time.Time) (Range, error) {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch key {
	case "今天":
		return Range{Start: midnight, End: midnight.AddDate(0, 0, 1)}, nil
	case "昨天":
		return Range{Start: midnight.AddDate(0, 0, -1), End: midnight}, nil
	case "本月":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		// AddDate normalizes December into January of the next year.
		return Range{Start: first, End: first.AddDate(0, 1, 0)}, nil
	}

	if reISODate.MatchString(key) {
		start, err := time.ParseInLocation("2006-01-02", key, loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %s", ErrUnsupportedRange, key)
		}
		return Range{Start: start, End: start.AddDate(0, 0, 1)}, nil
	}

	return Range{}, fmt.Errorf("%w: %s", ErrUnsupportedRange, key)
}
