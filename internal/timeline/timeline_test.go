package timeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bigschedule/internal/model"
)

func mustInstant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, ok := ParseInstant(s)
	require.True(t, ok, "parse %q", s)
	return ts
}

func TestClassifyWithinWindowIsActive(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"}

	for _, now := range []string{"2025-05-19T09:00", "2025-05-19T09:30", "2025-05-19T10:00"} {
		require.Equal(t, StatusActive, Classify(item, mustInstant(t, now)), "now=%s", now)
	}
}

func TestClassifyAfterEndIsPassed(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{StartTime: "2025-05-19T14:00", EndTime: "2025-05-19T15:00"}
	require.Equal(t, StatusPassed, Classify(item, mustInstant(t, "2025-05-19T16:00")))

	// Passed is decided by the end bound alone, even for an inverted window.
	inverted := model.AgendaItem{StartTime: "2025-05-19T15:00", EndTime: "2025-05-19T14:00"}
	require.Equal(t, StatusPassed, Classify(inverted, mustInstant(t, "2025-05-19T16:00")))
}

func TestClassifyBeforeStartIsUpcoming(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{StartTime: "2025-05-19T14:00", EndTime: "2025-05-19T15:00"}
	require.Equal(t, StatusUpcoming, Classify(item, mustInstant(t, "2025-05-19T09:30")))
}

func TestClassifyMissingBoundIsAlwaysUpcoming(t *testing.T) {
	t.Parallel()

	probes := []string{"2020-01-01T00:00", "2025-05-19T12:00", "2099-12-31T23:59"}
	items := []model.AgendaItem{
		{},
		{StartTime: "2025-05-19T09:00"},
		{EndTime: "2025-05-19T10:00"},
		{StartTime: "not a timestamp", EndTime: "2025-05-19T10:00"},
	}

	for _, item := range items {
		for _, now := range probes {
			require.Equal(t, StatusUpcoming, Classify(item, mustInstant(t, now)),
				"item=%+v now=%s", item, now)
		}
	}
}

func TestClassifyAcceptsRFC3339(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{StartTime: "2025-05-19T09:00:00Z", EndTime: "2025-05-19T10:00:00Z"}
	now := time.Date(2025, 5, 19, 9, 30, 0, 0, time.UTC)
	require.Equal(t, StatusActive, Classify(item, now))
}

func TestClassifyAcceptsZonedWithoutSeconds(t *testing.T) {
	t.Parallel()

	// datetime-local inputs combined with a zone picker produce offsets
	// without a seconds component.
	item := model.AgendaItem{StartTime: "2025-05-19T09:00+02:00", EndTime: "2025-05-19T10:00+02:00"}

	loc := time.FixedZone("CEST", 2*60*60)
	require.Equal(t, StatusActive, Classify(item, time.Date(2025, 5, 19, 9, 30, 0, 0, loc)))
	require.Equal(t, StatusPassed, Classify(item, time.Date(2025, 5, 19, 11, 0, 0, 0, loc)))
}

func TestDayKeyPrefersStartTime(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2025-05-19", DayKey(model.AgendaItem{StartTime: "2025-05-19T09:00", EndTime: "2025-05-20T10:00"}))
	require.Equal(t, "2025-05-20", DayKey(model.AgendaItem{EndTime: "2025-05-20T10:00"}))
	require.Equal(t, NoDateKey, DayKey(model.AgendaItem{}))

	// The date portion is taken verbatim from the lexical form; offsets in
	// the time-of-day part never shift the key.
	require.Equal(t, "2025-05-19", DayKey(model.AgendaItem{StartTime: "2025-05-19T23:30:00+07:00"}))
}

func TestGroupByDayOrderingScenario(t *testing.T) {
	t.Parallel()

	a := model.AgendaItem{ID: "a", StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"}
	b := model.AgendaItem{ID: "b", StartTime: "2025-05-19T14:00", EndTime: "2025-05-19T15:00"}
	c := model.AgendaItem{ID: "c", StartTime: "2025-05-20T09:00", EndTime: "2025-05-20T10:00"}

	buckets := GroupByDay([]model.AgendaItem{a, b, c})
	require.Len(t, buckets, 2)
	require.Equal(t, "2025-05-19", buckets[0].Key)
	require.Equal(t, []model.AgendaItem{a, b}, buckets[0].Items)
	require.Equal(t, "2025-05-20", buckets[1].Key)
	require.Equal(t, []model.AgendaItem{c}, buckets[1].Items)
}

func TestGroupByDayFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	// Keys come out in first-appearance order, not sorted by date.
	items := []model.AgendaItem{
		{ID: "1", StartTime: "2025-06-02T08:00"},
		{ID: "2", StartTime: "2025-06-01T08:00"},
		{ID: "3", StartTime: "2025-06-02T12:00"},
		{ID: "4"},
	}

	buckets := GroupByDay(items)
	require.Len(t, buckets, 3)
	require.Equal(t, "2025-06-02", buckets[0].Key)
	require.Equal(t, "2025-06-01", buckets[1].Key)
	require.Equal(t, NoDateKey, buckets[2].Key)
	require.Equal(t, []string{"1", "3"}, []string{buckets[0].Items[0].ID, buckets[0].Items[1].ID})
}

func TestGroupByDayIsTotalPartition(t *testing.T) {
	t.Parallel()

	items := []model.AgendaItem{
		{ID: "1", StartTime: "2025-06-01T08:00"},
		{ID: "2"},
		{ID: "3", EndTime: "2025-06-01T09:00"},
		{ID: "4", StartTime: "garbage"},
		{ID: "5", StartTime: "2025-06-03T10:00"},
	}

	buckets := GroupByDay(items)
	var seen []string
	for _, bucket := range buckets {
		for _, item := range bucket.Items {
			seen = append(seen, item.ID)
		}
	}
	require.ElementsMatch(t, []string{"1", "2", "3", "4", "5"}, seen)
	require.Len(t, seen, len(items))

	require.Empty(t, GroupByDay(nil))
}

func TestGroupByDaySharedDatePrefix(t *testing.T) {
	t.Parallel()

	// Same leading date, different time-of-day and offsets: one bucket.
	items := []model.AgendaItem{
		{ID: "1", StartTime: "2025-05-19T09:00"},
		{ID: "2", StartTime: "2025-05-19T22:15:00Z"},
		{ID: "3", StartTime: "2025-05-19T23:59:59+09:00"},
	}
	buckets := GroupByDay(items)
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Items, 3)
}

func TestBuildTimelineScenario(t *testing.T) {
	t.Parallel()

	a := model.AgendaItem{ID: "a", StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"}
	b := model.AgendaItem{ID: "b", StartTime: "2025-05-19T14:00", EndTime: "2025-05-19T15:00"}
	c := model.AgendaItem{ID: "c", StartTime: "2025-05-20T09:00", EndTime: "2025-05-20T10:00"}
	free := model.AgendaItem{ID: "free", Title: "sometime"}

	now := mustInstant(t, "2025-05-19T09:30")
	sections := BuildTimeline([]model.AgendaItem{a, b, c, free}, now)

	require.Len(t, sections, 3)
	require.Equal(t, "Monday, 19 May 2025", sections[0].DateLabel)
	require.Equal(t, StatusActive, sections[0].Items[0].Status)
	require.Equal(t, StatusUpcoming, sections[0].Items[1].Status)
	require.Equal(t, "09:00", sections[0].Items[0].DisplayStart)
	require.Equal(t, "10:00", sections[0].Items[0].DisplayEnd)

	require.Equal(t, "Tuesday, 20 May 2025", sections[1].DateLabel)
	require.Equal(t, StatusUpcoming, sections[1].Items[0].Status)

	require.Equal(t, NoDateKey, sections[2].DateLabel)
	require.Equal(t, StatusUpcoming, sections[2].Items[0].Status)
	require.Equal(t, "", sections[2].Items[0].DisplayStart)
	require.Equal(t, "", sections[2].Items[0].DisplayEnd)
}

func TestBuildTimelineDisplayTimesFromRFC3339(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{ID: "x", StartTime: "2025-05-19T09:05:00+02:00", EndTime: "2025-05-19T10:45:00+02:00"}
	sections := BuildTimeline([]model.AgendaItem{item}, mustInstant(t, "2025-05-19T00:00"))
	require.Equal(t, "09:05", sections[0].Items[0].DisplayStart)
	require.Equal(t, "10:45", sections[0].Items[0].DisplayEnd)
}

func TestBuildTimelineUnparsableKeyPassesThrough(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{ID: "x", StartTime: "soonish"}
	sections := BuildTimeline([]model.AgendaItem{item}, time.Now())
	require.Len(t, sections, 1)
	// Grouping uses the literal string; the label never pretends it parsed.
	require.Equal(t, "soonish", sections[0].DateLabel)
	require.Equal(t, StatusUpcoming, sections[0].Items[0].Status)
}

func TestBuildTimelineDeterministic(t *testing.T) {
	t.Parallel()

	items := []model.AgendaItem{
		{ID: "a", StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"},
		{ID: "b"},
		{ID: "c", StartTime: "2025-05-20T09:00"},
	}
	now := mustInstant(t, "2025-05-19T09:30")

	first, err := json.Marshal(BuildTimeline(items, now))
	require.NoError(t, err)
	second, err := json.Marshal(BuildTimeline(items, now))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestStatusMonotonicOverTime(t *testing.T) {
	t.Parallel()

	item := model.AgendaItem{StartTime: "2025-05-19T09:00", EndTime: "2025-05-19T10:00"}
	rank := map[Status]int{StatusUpcoming: 0, StatusActive: 1, StatusPassed: 2}

	prev := -1
	for _, now := range []string{
		"2025-05-19T08:00", "2025-05-19T09:00", "2025-05-19T09:59",
		"2025-05-19T10:00", "2025-05-19T10:01", "2025-05-20T00:00",
	} {
		cur := rank[Classify(item, mustInstant(t, now))]
		require.GreaterOrEqual(t, cur, prev, "status regressed at now=%s", now)
		prev = cur
	}
}
