package timeline

import (
	"time"

	"github.com/rcliao/memo-timeline/internal/model"
)

// Matches reports whether the entry's calendar day falls inside the
// window. today must be a midnight-normalized day; its location decides
// which calendar day a timestamp belongs to.
func Matches(e model.Entry, w model.Window, today time.Time) bool {
	d := e.Day(today.Location())
	switch w.Kind {
	case model.Today:
		return d.Equal(today)
	case model.Last7:
		// Today inclusive, a 7 day span.
		return !d.Before(today.AddDate(0, 0, -6))
	case model.Last30:
		return !d.Before(today.AddDate(0, 0, -29))
	case model.Custom:
		from, to := w.From, w.To
		if from.After(to) {
			from, to = to, from
		}
		return !d.Before(from) && !d.After(to)
	default:
		return true
	}
}

// Apply filters entries by the window and, when limit > 0, keeps only
// the newest limit entries of the filtered result, still in ascending
// order. Truncation drops the oldest entries within the filtered result,
// never from the underlying cache.
func Apply(entries []model.Entry, w model.Window, today time.Time, limit int) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if Matches(e, w, today) {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
