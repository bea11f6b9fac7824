package report

import (
	"fmt"
	"time"

	"github.com/gitspan/gitspan/internal/core/model"
)

// InvalidDateFormatError means a --since/--until value matched neither
// accepted date format.
type InvalidDateFormatError struct {
	Input string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format: %s (expected RFC 3339 or YYYY-MM-DD)", e.Input)
}

// ParseTimeRange converts the optional since/until strings into an inclusive
// timestamp window. An empty since means the beginning of time; an empty
// until means unbounded. The until bound is inclusive: commits exactly at
// until are kept.
func ParseTimeRange(since, until string) (model.TimeRange, error) {
	tr := model.UnboundedTimeRange()

	if since != "" {
		ts, err := parseLenient(since)
		if err != nil {
			return model.TimeRange{}, err
		}
		tr.Since = ts
	}

	if until != "" {
		ts, err := parseLenient(until)
		if err != nil {
			return model.TimeRange{}, err
		}
		tr.Until = ts
	}

	return tr, nil
}

// parseLenient accepts a full RFC 3339 timestamp first, then falls back to a
// bare calendar date. Bare dates are interpreted as 00:00:00 UTC.
func parseLenient(s string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t.Unix(), nil
	}
	return 0, &InvalidDateFormatError{Input: s}
}
