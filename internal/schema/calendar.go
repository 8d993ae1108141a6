package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// weekLabelPrefix is the fixed prefix of source week labels,
// e.g. "Week Ending 01-05-25".
const weekLabelPrefix = "Week Ending"

// weekDateLayout is the date layout inside a week label (MM-DD-YY).
const weekDateLayout = "01-02-06"

// WeekInfo is the calendar breakdown of a source week label.
type WeekInfo struct {
	// Number is the ISO week number of the week-ending date.
	Number int

	// Label is the source label, e.g. "Week Ending 01-05-25".
	Label string

	// Ending is the week-ending date.
	Ending time.Time

	// Month fields derived from the week-ending date.
	Month     int
	MonthName string // "January"
	MonthCode string // "1. Jan"
	Year      int
}

// ParseWeekLabel parses a "Week Ending MM-DD-YY" label into its calendar
// breakdown.
func ParseWeekLabel(label string) (WeekInfo, error) {
	trimmed := strings.TrimSpace(label)
	if !strings.HasPrefix(trimmed, weekLabelPrefix) {
		return WeekInfo{}, fmt.Errorf("week label %q does not start with %q", label, weekLabelPrefix)
	}

	datePart := strings.TrimSpace(strings.TrimPrefix(trimmed, weekLabelPrefix))
	ending, err := time.Parse(weekDateLayout, datePart)
	if err != nil {
		return WeekInfo{}, fmt.Errorf("week label %q: unparsable date %q: %w", label, datePart, err)
	}

	return weekInfoFor(trimmed, ending), nil
}

// WeekInfoForDate builds the calendar breakdown for a week-ending date,
// synthesizing the label. Used by generated data and the Postgres source,
// where the date arrives already typed.
func WeekInfoForDate(ending time.Time) WeekInfo {
	label := fmt.Sprintf("%s %s", weekLabelPrefix, ending.Format(weekDateLayout))
	return weekInfoFor(label, ending)
}

func weekInfoFor(label string, ending time.Time) WeekInfo {
	_, isoWeek := ending.ISOWeek()
	return WeekInfo{
		Number:    isoWeek,
		Label:     label,
		Ending:    ending,
		Month:     int(ending.Month()),
		MonthName: ending.Month().String(),
		MonthCode: fmt.Sprintf("%d. %s", int(ending.Month()), ending.Format("Jan")),
		Year:      ending.Year(),
	}
}

// YearAgo returns the week-ending date exactly 52 weeks before this week.
func (w WeekInfo) YearAgo() time.Time {
	return w.Ending.Add(-YearAgoOffset)
}

// WeekDictionary maps week-ending dates to their calendar breakdown,
// mirroring the week dictionary sheet of the source workbook.
type WeekDictionary struct {
	byEnding map[time.Time]WeekInfo
}

// NewWeekDictionary builds a dictionary from the distinct weeks seen in a
// fact load.
func NewWeekDictionary() *WeekDictionary {
	return &WeekDictionary{byEnding: make(map[time.Time]WeekInfo)}
}

// Add records a week. Re-adding the same week is a no-op.
func (d *WeekDictionary) Add(w WeekInfo) {
	if _, ok := d.byEnding[w.Ending]; !ok {
		d.byEnding[w.Ending] = w
	}
}

// Len returns the number of distinct weeks.
func (d *WeekDictionary) Len() int {
	return len(d.byEnding)
}

// Weeks returns all weeks ordered by week-ending date.
func (d *WeekDictionary) Weeks() []WeekInfo {
	weeks := make([]WeekInfo, 0, len(d.byEnding))
	for _, w := range d.byEnding {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Ending.Before(weeks[j].Ending)
	})
	return weeks
}
