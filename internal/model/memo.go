// Package model defines the core memo timeline data types.
package model

import "time"

// MemoEntry is a single timestamped memo as stored in a document's log.
type MemoEntry struct {
	TS   int64  `json:"ts"`
	Text string `json:"text"`
}

// Entry is a MemoEntry plus the provenance attached at collection time.
// Provenance is derived from the owning document and recomputed on every
// full collection, never persisted on its own.
type Entry struct {
	TS         int64  `json:"ts"`
	Text       string `json:"text"`
	DocumentID string `json:"document_id"`
	Container  string `json:"container"`
	Title      string `json:"title"`
}

// Memo returns the persistable part of the entry.
func (e Entry) Memo() MemoEntry {
	return MemoEntry{TS: e.TS, Text: e.Text}
}

// Day returns the entry's calendar day in loc, time-of-day discarded.
func (e Entry) Day(loc *time.Location) time.Time {
	return DayOf(e.TS, loc)
}

// DayOf converts a unix timestamp to its local calendar day (midnight).
func DayOf(ts int64, loc *time.Location) time.Time {
	t := time.Unix(ts, 0).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WindowKind selects one of the fixed time-window filters.
type WindowKind int

const (
	All WindowKind = iota
	Today
	Last7
	Last30
	Custom
)

// Window is a calendar-day filter over the timeline. From and To are only
// meaningful for Custom; they hold midnight-normalized days.
type Window struct {
	Kind WindowKind
	From time.Time
	To   time.Time
}

// DayGroup is a contiguous run of entries sharing one calendar day.
type DayGroup struct {
	Day     time.Time `json:"day"`
	Entries []Entry   `json:"entries"`
}

// RowKind tags a rendered timeline row.
type RowKind int

const (
	RowHeader RowKind = iota
	RowMemo
)

// Row is one item of the rendered projection: either a day header or a
// memo. Entry is valid only when Kind is RowMemo.
type Row struct {
	Kind  RowKind
	Day   time.Time
	Entry Entry
}
