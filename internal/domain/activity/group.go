package activity

import "time"

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
	LabelUnknown   = "Unknown"

	dayLabelLayout      = "2 Jan"
	pastYearLabelLayout = "2 Jan 2006"
)

// DateGroup is one bucket of the date-grouped feed. A slice of DateGroup is
// ordered by the first appearance of each label in the input.
type DateGroup[T any] struct {
	Label string `json:"label"`
	Items []T    `json:"items"`
}

// Grouper buckets records by calendar day relative to its clock. The zero
// value uses time.Now and time.Local.
type Grouper struct {
	Now      func() time.Time
	Location *time.Location
}

func (g Grouper) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g Grouper) location() *time.Location {
	if g.Location != nil {
		return g.Location
	}
	return time.Local
}

// Group is GroupByDate evaluated against the grouper's clock at call time.
func Group[T any](g Grouper, items []T, createdAt func(T) time.Time) []DateGroup[T] {
	return GroupByDate(items, createdAt, g.now(), g.location())
}

// GroupByDate buckets items into "Today", "Yesterday" or a "2 Jan" style
// label, comparing calendar days in loc against now. Days outside the current
// year also carry the year. Items keep their input
// order inside a group and groups appear in order of first encounter.
func GroupByDate[T any](items []T, createdAt func(T) time.Time, now time.Time, loc *time.Location) []DateGroup[T] {
	if loc == nil {
		loc = time.Local
	}
	groups := make([]DateGroup[T], 0)
	index := make(map[string]int)

	today := dateOf(now, loc)
	yesterday := today.addDays(-1)

	for _, item := range items {
		label := dayLabel(createdAt(item), today, yesterday, loc)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DateGroup[T]{Label: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

func dayLabel(ts time.Time, today, yesterday civilDate, loc *time.Location) string {
	if ts.IsZero() {
		return LabelUnknown
	}
	day := dateOf(ts, loc)
	switch {
	case day == today:
		return LabelToday
	case day == yesterday:
		return LabelYesterday
	case day.year != today.year:
		return ts.In(loc).Format(pastYearLabelLayout)
	default:
		return ts.In(loc).Format(dayLabelLayout)
	}
}

// civilDate is a calendar day with no time or zone. Midnight does not exist
// on every day in every zone, so days are compared by date, not by instant.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time, loc *time.Location) civilDate {
	y, m, d := t.In(loc).Date()
	return civilDate{year: y, month: m, day: d}
}

func (c civilDate) addDays(n int) civilDate {
	y, m, d := time.Date(c.year, c.month, c.day+n, 12, 0, 0, 0, time.UTC).Date()
	return civilDate{year: y, month: m, day: d}
}
