package model

import (
	"math"
	"strings"
)

// TimeRange is an inclusive [Since, Until] window in epoch seconds. An
// inverted range (Since > Until) is not rejected; it simply matches nothing.
type TimeRange struct {
	Since int64
	Until int64
}

// UnboundedTimeRange covers all representable timestamps.
func UnboundedTimeRange() TimeRange {
	return TimeRange{Since: 0, Until: math.MaxInt64}
}

// Contains reports whether ts falls inside the window. Both bounds are
// inclusive: a commit exactly at Until is kept.
func (r TimeRange) Contains(ts int64) bool {
	return ts >= r.Since && ts <= r.Until
}

// Filter decides per commit, during the walk, whether a record is kept.
type Filter struct {
	Range TimeRange
	// Author is a case-sensitive literal substring matched against the
	// record's author identifier. Empty keeps all authors.
	Author string
}

func (f Filter) Keep(rec CommitRecord) bool {
	if !f.Range.Contains(rec.Timestamp) {
		return false
	}
	if f.Author != "" && !strings.Contains(rec.Author, f.Author) {
		return false
	}
	return true
}
