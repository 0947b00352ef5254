// Package docstore provides the document adapter contract the timeline
// engine collects from, and a SQLite implementation.
package docstore

import (
	"context"
	"errors"
)

// Sentinel errors for the adapter failure modes.
var (
	// ErrDocumentNotFound means the referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoMemoField means the document does not carry the memo log
	// attribute; mutation is disabled for it.
	ErrNoMemoField = errors.New("document has no memo log field")
)

// Document is the owning record for a per-document memo log.
type Document struct {
	ID         string `json:"id"`
	Container  string `json:"container"`
	Title      string `json:"title"`
	HasMemoLog bool   `json:"has_memo_log"`
}

// Metadata is the per-document provenance attached to collected entries.
type Metadata struct {
	Container string
	Title     string
}

// Adapter is the storage contract the collector and maintenance policy
// depend on. WriteMemoRaw must durably commit before returning success.
type Adapter interface {
	// HasMemoField reports whether the document carries the memo log
	// attribute at all.
	HasMemoField(ctx context.Context, id string) (bool, error)

	// ReadMemoRaw returns the raw memo log attribute, "" when unset.
	ReadMemoRaw(ctx context.Context, id string) (string, error)

	// WriteMemoRaw replaces the memo log attribute. Writing "" clears it.
	WriteMemoRaw(ctx context.Context, id string, raw string) error

	// ScanDocumentsWithMemos returns the ids of all documents whose memo
	// log attribute is non-empty, in stable scan order.
	ScanDocumentsWithMemos(ctx context.Context) ([]string, error)

	// Metadata returns the container name and title snippet for a
	// document. The snippet has markup stripped and is truncated.
	Metadata(ctx context.Context, id string) (Metadata, error)
}
