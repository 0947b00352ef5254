package timeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rcliao/memo-timeline/internal/docstore"
)

// Reloader runs a full collection off the interactive path and delivers
// the result as an atomic whole-cache replacement.
type Reloader struct {
	Adapter docstore.Adapter
	Cache   *Cache
	Logger  zerolog.Logger
}

// Run collects the corpus and, on success, replaces the cache contents.
// It reports whether the result was applied: when ctx is cancelled
// before collection finishes — the consuming panel was torn down —
// delivery is a no-op rather than a mutation of abandoned state.
//
// Callers start Run on its own goroutine; collection is the only
// operation that can take O(all documents) time and must never block the
// interactive path.
func (r *Reloader) Run(ctx context.Context) (bool, error) {
	entries, err := Collect(ctx, r.Adapter, r.Logger)
	if err != nil {
		return false, err
	}

	select {
	case <-ctx.Done():
		r.Logger.Debug().Msg("reload finished after teardown, result dropped")
		return false, ctx.Err()
	default:
	}

	r.Cache.ReplaceAll(entries)
	r.Logger.Debug().Int("entries", len(entries)).Msg("timeline reloaded")
	return true, nil
}

// Start launches Run on a new goroutine and returns a channel that
// yields its outcome once.
func (r *Reloader) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx)
		done <- err
	}()
	return done
}
