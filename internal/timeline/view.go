package timeline

import (
	"strings"
	"time"

	"bigschedule/internal/model"
)

// Entry is one agenda item annotated for rendering.
type Entry struct {
	Item         model.AgendaItem `json:"item"`
	Status       Status           `json:"status"`
	DisplayStart string           `json:"displayStart"`
	DisplayEnd   string           `json:"displayEnd"`
}

// DaySection is one rendered day of the timeline.
type DaySection struct {
	DateLabel string  `json:"dateLabel"`
	Items     []Entry `json:"items"`
}

// BuildTimeline projects items into render-ready day sections: grouped by
// day, each item classified against now. The input is never filtered,
// re-ordered, or mutated, so identical inputs always produce identical
// output.
func BuildTimeline(items []model.AgendaItem, now time.Time) []DaySection {
	buckets := GroupByDay(items)
	sections := make([]DaySection, 0, len(buckets))

	for _, bucket := range buckets {
		section := DaySection{
			DateLabel: formatDayLabel(bucket.Key),
			Items:     make([]Entry, 0, len(bucket.Items)),
		}
		for _, item := range bucket.Items {
			section.Items = append(section.Items, Entry{
				Item:         item,
				Status:       Classify(item, now),
				DisplayStart: displayTime(item.StartTime),
				DisplayEnd:   displayTime(item.EndTime),
			})
		}
		sections = append(sections, section)
	}
	return sections
}

// formatDayLabel renders a day key as "Friday, 19 May 2025". The NoDateKey
// sentinel and any key that is not a plain date pass through unchanged.
func formatDayLabel(key string) string {
	if key == NoDateKey {
		return key
	}
	date, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return date.Format("Monday, 02 January 2006")
}

// displayTime extracts the HH:MM portion of a raw timestamp, or "" when the
// timestamp is missing or has no time-of-day part.
func displayTime(raw string) string {
	_, tod, found := strings.Cut(raw, "T")
	if !found {
		return ""
	}
	if len(tod) > 5 {
		tod = tod[:5]
	}
	return tod
}
