package views

import (
	"github.com/pgEdge/pgedge-salesview/internal/aggregate"
	"github.com/pgEdge/pgedge-salesview/internal/schema"
)

// WeeksInScope returns the snapshot's weeks that fall inside the scope's
// week range, ordered by week-ending date.
func WeeksInScope(agg *aggregate.Aggregator, sc aggregate.Scope) []schema.WeekInfo {
	var out []schema.WeekInfo
	for _, w := range agg.Snapshot().Weeks().Weeks() {
		if !sc.From.IsZero() && w.Ending.Before(sc.From) {
			continue
		}
		if !sc.To.IsZero() && w.Ending.After(sc.To) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// WeekLabels returns chart axis labels for a week list.
func WeekLabels(weeks []schema.WeekInfo) []string {
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Ending.Format("01-02-06")
	}
	return labels
}
