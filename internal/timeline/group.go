package timeline

import (
	"time"

	"github.com/rcliao/memo-timeline/internal/model"
)

// Group buckets an ascending entry sequence into day groups, opening a
// new group whenever the calendar day changes. Entry order inside a
// group is preserved. The live view and every export render from this
// one definition.
func Group(entries []model.Entry, loc *time.Location) []model.DayGroup {
	var groups []model.DayGroup
	for _, e := range entries {
		d := e.Day(loc)
		if len(groups) == 0 || !groups[len(groups)-1].Day.Equal(d) {
			groups = append(groups, model.DayGroup{Day: d})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, e)
	}
	return groups
}

// Flatten renders day groups into the tagged header/memo row sequence
// consumed by the live projection.
func Flatten(groups []model.DayGroup) []model.Row {
	var rows []model.Row
	for _, g := range groups {
		rows = append(rows, model.Row{Kind: model.RowHeader, Day: g.Day})
		for _, e := range g.Entries {
			rows = append(rows, model.Row{Kind: model.RowMemo, Day: g.Day, Entry: e})
		}
	}
	return rows
}
