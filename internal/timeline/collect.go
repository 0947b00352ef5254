// Package timeline implements the global memo timeline: collection over
// the document corpus, calendar-window filtering, day grouping, and the
// single-owner cache with its incremental-vs-rebuild maintenance policy.
package timeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rcliao/memo-timeline/internal/codec"
	"github.com/rcliao/memo-timeline/internal/docstore"
	"github.com/rcliao/memo-timeline/internal/model"
)

// Collect walks every document with a non-empty memo log and flattens
// the logs into one globally time-ordered list with provenance attached.
// Per-document failures are logged and skipped, so the result may be
// partial but the collection never aborts on one bad document. Repeated
// calls over an unchanged corpus return equal sequences.
func Collect(ctx context.Context, adapter docstore.Adapter, log zerolog.Logger) ([]model.Entry, error) {
	ids, err := adapter.ScanDocumentsWithMemos(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	var entries []model.Entry
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		has, err := adapter.HasMemoField(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("document", id).Msg("skipping unreadable document")
			continue
		}
		if !has {
			continue
		}

		raw, err := adapter.ReadMemoRaw(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("document", id).Msg("skipping unreadable memo log")
			continue
		}
		memos := codec.Decode(raw)
		if len(memos) == 0 {
			continue
		}

		md, err := adapter.Metadata(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("document", id).Msg("skipping document without metadata")
			continue
		}

		for _, m := range memos {
			entries = append(entries, model.Entry{
				TS:         m.TS,
				Text:       m.Text,
				DocumentID: id,
				Container:  md.Container,
				Title:      md.Title,
			})
		}
	}

	// Stable sort: equal timestamps keep scan order, then the original
	// intra-document order.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].TS < entries[j].TS })
	return entries, nil
}
