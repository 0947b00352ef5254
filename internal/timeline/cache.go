package timeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/memo-timeline/internal/codec"
	"github.com/rcliao/memo-timeline/internal/docstore"
	"github.com/rcliao/memo-timeline/internal/model"
)

// ErrMemoNotFound means an edit or delete target was not present in the
// document's memo log, for example because it was already removed
// elsewhere. The operation applies no partial mutation.
var ErrMemoNotFound = errors.New("memo not found in document log")

// ErrEmptyMemo means a mutation was attempted with blank memo text.
var ErrEmptyMemo = errors.New("memo text is empty")

// Config configures a Cache.
type Config struct {
	Adapter  docstore.Adapter
	Logger   zerolog.Logger
	Window   model.Window
	Limit    int            // display cap; 0 means unbounded
	Location *time.Location // defaults to time.Local
}

// Cache is the single owner of the global memo list and the rendered
// projection derived from it. The durable per-document store is written
// first on every mutation; the cache mirrors it only after the write
// succeeds, so the cache is never ahead of durable state.
//
// Methods are individually atomic, but there is exactly one intended
// mutator context: a collection completing concurrently with mutations
// replaces the cache wholesale, so mutations issued while a reload is in
// flight can be overwritten by its result. Callers wanting stronger
// guarantees serialize mutations and reload through one goroutine.
type Cache struct {
	mu      sync.Mutex
	adapter docstore.Adapter
	log     zerolog.Logger
	loc     *time.Location
	now     func() time.Time

	entries []model.Entry
	window  model.Window
	limit   int
	rows    []model.Row
}

// NewCache creates an empty cache. Populate it with Reload or
// ReplaceAll.
func NewCache(cfg Config) *Cache {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Cache{
		adapter: cfg.Adapter,
		log:     cfg.Logger,
		loc:     loc,
		now:     time.Now,
		window:  cfg.Window,
		limit:   cfg.Limit,
	}
}

func (c *Cache) today() time.Time {
	return model.DayOf(c.now().Unix(), c.loc)
}

// rebuildRowsLocked recomputes the rendered projection from scratch.
func (c *Cache) rebuildRowsLocked() {
	c.rows = Flatten(Group(Apply(c.entries, c.window, c.today(), c.limit), c.loc))
}

// Reload collects the whole corpus synchronously and replaces the cache.
func (c *Cache) Reload(ctx context.Context) error {
	entries, err := Collect(ctx, c.adapter, c.log)
	if err != nil {
		return err
	}
	c.ReplaceAll(entries)
	return nil
}

// ReplaceAll swaps in a freshly collected entry list and re-renders. The
// slice is copied; callers keep no alias into the cache.
func (c *Cache) ReplaceAll(entries []model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append([]model.Entry(nil), entries...)
	c.rebuildRowsLocked()
}

// Entries returns a snapshot copy of the full global list.
func (c *Cache) Entries() []model.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Entry(nil), c.entries...)
}

// Rows returns a snapshot copy of the rendered projection.
func (c *Cache) Rows() []model.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Row(nil), c.rows...)
}

// Groups returns the current filtered view as day groups, for export.
func (c *Cache) Groups() []model.DayGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Group(Apply(c.entries, c.window, c.today(), c.limit), c.loc)
}

// SetWindow switches the active filter and re-renders.
func (c *Cache) SetWindow(w model.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	c.rebuildRowsLocked()
}

// SetLimit changes the display cap and re-renders.
func (c *Cache) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	c.rebuildRowsLocked()
}

// Add appends a memo to the document's log, persists it, and mirrors it
// into the cache. The cache append is unconditional: the global list
// never drops history. The rendered view is patched incrementally when
// possible, or fully re-rendered when the capped view is saturated.
func (c *Cache) Add(ctx context.Context, documentID, text string) (model.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Entry{}, ErrEmptyMemo
	}

	has, err := c.adapter.HasMemoField(ctx, documentID)
	if err != nil {
		return model.Entry{}, err
	}
	if !has {
		return model.Entry{}, fmt.Errorf("%w: %s", docstore.ErrNoMemoField, documentID)
	}

	raw, err := c.adapter.ReadMemoRaw(ctx, documentID)
	if err != nil {
		return model.Entry{}, err
	}
	memos := codec.Decode(raw)
	memo := model.MemoEntry{TS: c.now().Unix(), Text: text}
	memos = append(memos, memo)

	if err := c.adapter.WriteMemoRaw(ctx, documentID, codec.Encode(memos)); err != nil {
		return model.Entry{}, fmt.Errorf("persist memo: %w", err)
	}

	md, err := c.adapter.Metadata(ctx, documentID)
	if err != nil {
		// The write is already durable; provenance just comes up empty
		// until the next full collection.
		c.log.Warn().Err(err).Str("document", documentID).Msg("metadata lookup failed after add")
	}

	entry := model.Entry{
		TS:         memo.TS,
		Text:       memo.Text,
		DocumentID: documentID,
		Container:  md.Container,
		Title:      md.Title,
	}

	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.patchAfterAddLocked(entry)
	c.mu.Unlock()

	return entry, nil
}

// patchAfterAddLocked applies the incremental-vs-rebuild policy for one
// newly appended entry.
//
// The incremental path assumes the new entry's day is not earlier than
// the last rendered day header. A backdated timestamp (clock skew,
// manual edits) leaves the view misordered until the next full rebuild;
// that is a known limitation carried over from the original behavior.
func (c *Cache) patchAfterAddLocked(entry model.Entry) {
	today := c.today()
	if !Matches(entry, c.window, today) {
		// Cache updated, view unchanged.
		return
	}

	filtered := Apply(c.entries, c.window, today, c.limit)
	if c.limit > 0 && len(filtered) >= c.limit {
		// The capped view is saturated: an old entry has to be evicted,
		// which a pure append cannot express.
		c.rebuildRowsLocked()
		return
	}

	d := entry.Day(c.loc)
	if last, ok := c.lastHeaderDayLocked(); !ok || !last.Equal(d) {
		c.rows = append(c.rows, model.Row{Kind: model.RowHeader, Day: d})
	}
	c.rows = append(c.rows, model.Row{Kind: model.RowMemo, Day: d, Entry: entry})
}

// lastHeaderDayLocked finds the day of the last rendered header row.
func (c *Cache) lastHeaderDayLocked() (time.Time, bool) {
	for i := len(c.rows) - 1; i >= 0; i-- {
		if c.rows[i].Kind == model.RowHeader {
			return c.rows[i].Day, true
		}
	}
	return time.Time{}, false
}

// Edit rewrites the text of the first memo in the document's log whose
// timestamp matches. When several entries share a timestamp the first in
// log order is the one edited; that ambiguity is accepted rather than
// treated as an error. The cache and the rendered row are patched in
// place only after the durable write succeeds; the timestamp does not
// change, so no re-sort is needed.
func (c *Cache) Edit(ctx context.Context, documentID string, ts int64, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return ErrEmptyMemo
	}

	has, err := c.adapter.HasMemoField(ctx, documentID)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: %s", docstore.ErrNoMemoField, documentID)
	}

	raw, err := c.adapter.ReadMemoRaw(ctx, documentID)
	if err != nil {
		return err
	}
	memos := codec.Decode(raw)

	found := false
	for i := range memos {
		if memos[i].TS == ts {
			memos[i].Text = newText
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: document %s ts %d", ErrMemoNotFound, documentID, ts)
	}

	if err := c.adapter.WriteMemoRaw(ctx, documentID, codec.Encode(memos)); err != nil {
		return fmt.Errorf("persist memo edit: %w", err)
	}

	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].DocumentID == documentID && c.entries[i].TS == ts {
			c.entries[i].Text = newText
			break
		}
	}
	for i := range c.rows {
		r := &c.rows[i]
		if r.Kind == model.RowMemo && r.Entry.DocumentID == documentID && r.Entry.TS == ts {
			r.Entry.Text = newText
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Delete removes the first memo matching both timestamp and trimmed
// text. The compound key disambiguates entries sharing a timestamp after
// rapid sequential adds. Removing the last entry clears the document's
// attribute. On success the matching cache entry is removed and the view
// fully re-rendered: a day group may have become empty.
func (c *Cache) Delete(ctx context.Context, documentID string, ts int64, text string) error {
	text = strings.TrimSpace(text)

	raw, err := c.adapter.ReadMemoRaw(ctx, documentID)
	if err != nil {
		return err
	}
	memos := codec.Decode(raw)

	kept := memos[:0]
	removed := false
	for _, m := range memos {
		if !removed && m.TS == ts && m.Text == text {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return fmt.Errorf("%w: document %s ts %d", ErrMemoNotFound, documentID, ts)
	}

	if err := c.adapter.WriteMemoRaw(ctx, documentID, codec.Encode(kept)); err != nil {
		return fmt.Errorf("persist memo delete: %w", err)
	}

	c.mu.Lock()
	for i := range c.entries {
		e := c.entries[i]
		if e.DocumentID == documentID && e.TS == ts && e.Text == text {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	c.rebuildRowsLocked()
	c.mu.Unlock()
	return nil
}
