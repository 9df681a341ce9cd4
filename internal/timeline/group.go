package timeline

import (
	"strings"

	"bigschedule/internal/model"
)

// NoDateKey is the bucket for items without any timestamp.
const NoDateKey = "No Date"

// DayBucket pairs a calendar date key with the items that fall on it.
type DayBucket struct {
	Key   string
	Items []model.AgendaItem
}

// DayKey derives the grouping key for an item: the literal date portion of
// its start time, falling back to the end time, falling back to NoDateKey.
// The date portion is whatever precedes the first 'T' in the raw string; no
// timezone normalization is applied.
func DayKey(item model.AgendaItem) string {
	src := item.StartTime
	if src == "" {
		src = item.EndTime
	}
	if src == "" {
		return NoDateKey
	}
	datePart, _, _ := strings.Cut(src, "T")
	if datePart == "" {
		return NoDateKey
	}
	return datePart
}

// GroupByDay partitions items into per-day buckets. Buckets appear in
// first-appearance order of their key, and items keep their input order
// within a bucket; the caller pre-sorts if chronological order is wanted.
// Every input item lands in exactly one bucket.
func GroupByDay(items []model.AgendaItem) []DayBucket {
	var buckets []DayBucket
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := DayKey(item)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, DayBucket{Key: key})
		}
		buckets[i].Items = append(buckets[i].Items, item)
	}
	return buckets
}
