package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/memo-timeline/internal/model"
)

func TestGroupByCalendarDay(t *testing.T) {
	entries := []model.Entry{
		{TS: at(2025, 3, 8, 9), Text: "a"},
		{TS: at(2025, 3, 8, 21), Text: "b"},
		{TS: at(2025, 3, 9, 7), Text: "c"},
		{TS: at(2025, 3, 11, 7), Text: "d"},
	}

	groups := Group(entries, time.UTC)
	require.Len(t, groups, 3)

	assert.Equal(t, day(2025, 3, 8), groups[0].Day)
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, "a", groups[0].Entries[0].Text)
	assert.Equal(t, "b", groups[0].Entries[1].Text)

	assert.Equal(t, day(2025, 3, 9), groups[1].Day)
	assert.Len(t, groups[1].Entries, 1)

	assert.Equal(t, day(2025, 3, 11), groups[2].Day)
	assert.Len(t, groups[2].Entries, 1)
}

func TestGroupEmpty(t *testing.T) {
	assert.Nil(t, Group(nil, time.UTC))
}

func TestFlattenTagsRows(t *testing.T) {
	entries := []model.Entry{
		{TS: at(2025, 3, 8, 9), Text: "a"},
		{TS: at(2025, 3, 9, 7), Text: "b"},
		{TS: at(2025, 3, 9, 8), Text: "c"},
	}

	rows := Flatten(Group(entries, time.UTC))
	require.Len(t, rows, 5)

	assert.Equal(t, model.RowHeader, rows[0].Kind)
	assert.Equal(t, day(2025, 3, 8), rows[0].Day)
	assert.Equal(t, model.RowMemo, rows[1].Kind)
	assert.Equal(t, "a", rows[1].Entry.Text)
	assert.Equal(t, model.RowHeader, rows[2].Kind)
	assert.Equal(t, day(2025, 3, 9), rows[2].Day)
	assert.Equal(t, "b", rows[3].Entry.Text)
	assert.Equal(t, "c", rows[4].Entry.Text)
}
