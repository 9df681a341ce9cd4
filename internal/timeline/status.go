// Package timeline turns a flat list of agenda items into the grouped,
// time-annotated view model the schedule pages render. It is pure: one call
// processes one snapshot of items against one "now" and holds no state, so
// callers refresh statuses by simply invoking it again.
package timeline

import (
	"time"

	"bigschedule/internal/model"
)

// Status is the temporal state of an agenda item relative to "now". It is
// recomputed on every call and never stored.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusPassed   Status = "passed"
)

// instantLayouts are the timestamp shapes the frontend actually sends:
// full RFC 3339, the naive datetime-local forms without a zone, and a
// zoned form without seconds.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// ParseInstant is the single conversion boundary from the stored timestamp
// string to an instant. A missing or unparsable timestamp reports ok=false;
// nothing downstream ever sees an invalid time.Time.
func ParseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify reports the status of item at the instant now.
//
// An item missing either bound (or carrying one that does not parse) is
// always upcoming: without a full window it can never be judged in progress
// or concluded. Otherwise the check is inclusive on both ends, and "passed"
// looks at the end bound alone.
func Classify(item model.AgendaItem, now time.Time) Status {
	start, okStart := ParseInstant(item.StartTime)
	end, okEnd := ParseInstant(item.EndTime)

	switch {
	case !okStart || !okEnd:
		return StatusUpcoming
	case !now.Before(start) && !now.After(end):
		return StatusActive
	case now.After(end):
		return StatusPassed
	default:
		return StatusUpcoming
	}
}
