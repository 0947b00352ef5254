// Package codec serializes a per-document memo log to and from the
// storable JSON text form: a list of {ts, text} records.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/memo-timeline/internal/model"
)

// now is a package-level var to allow test injection.
var now = time.Now

// Decode parses a raw memo log. Any parse failure yields nil: a broken
// log reads as empty and never aborts the caller.
func Decode(raw string) []model.MemoEntry {
	entries, err := decode(raw)
	if err != nil {
		return nil
	}
	return entries
}

// decode keeps the parse error visible for tests; the public contract
// collapses it to an empty log.
func decode(raw string) ([]model.MemoEntry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode memo log: %w", err)
	}

	var entries []model.MemoEntry
	for _, rec := range records {
		var item map[string]any
		if err := json.Unmarshal(rec, &item); err != nil {
			// Not an object record, skip it.
			continue
		}
		text, _ := item["text"].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		entries = append(entries, model.MemoEntry{TS: timestampOf(item["ts"]), Text: text})
	}
	return entries, nil
}

// timestampOf coerces a decoded ts value, defaulting to the current time
// when it is missing or non-numeric.
func timestampOf(v any) int64 {
	if ts, ok := v.(float64); ok {
		return int64(ts)
	}
	return now().Unix()
}

// Encode renders entries back to the storable form. An empty log encodes
// to an empty string, which is the signal that clears the attribute.
func Encode(entries []model.MemoEntry) string {
	if len(entries) == 0 {
		return ""
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
