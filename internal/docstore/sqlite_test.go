package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc, err := s.CreateDocument(ctx, CreateParams{Container: "inbox", Title: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected non-empty ID")
	}
	if !doc.HasMemoLog {
		t.Error("expected memo log capability by default")
	}

	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Container != "inbox" || got.Title != "hello" {
		t.Errorf("unexpected document: %+v", got)
	}

	if _, err := s.GetDocument(ctx, "nope"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestMemoRawReadWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc, _ := s.CreateDocument(ctx, CreateParams{Title: "t"})

	raw, err := s.ReadMemoRaw(ctx, doc.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if raw != "" {
		t.Errorf("expected empty log, got %q", raw)
	}

	if err := s.WriteMemoRaw(ctx, doc.ID, `[{"ts":1,"text":"x"}]`); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, _ = s.ReadMemoRaw(ctx, doc.ID)
	if raw != `[{"ts":1,"text":"x"}]` {
		t.Errorf("unexpected raw: %q", raw)
	}

	// Writing "" clears the attribute.
	if err := s.WriteMemoRaw(ctx, doc.ID, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	raw, _ = s.ReadMemoRaw(ctx, doc.ID)
	if raw != "" {
		t.Errorf("expected cleared log, got %q", raw)
	}
}

func TestWriteWithoutCapability(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc, _ := s.CreateDocument(ctx, CreateParams{Title: "plain", NoMemoLog: true})

	has, err := s.HasMemoField(ctx, doc.ID)
	if err != nil {
		t.Fatalf("capability check: %v", err)
	}
	if has {
		t.Error("expected no memo capability")
	}

	err = s.WriteMemoRaw(ctx, doc.ID, "[]")
	if !errors.Is(err, ErrNoMemoField) {
		t.Errorf("expected ErrNoMemoField, got %v", err)
	}
}

func TestScanDocumentsWithMemos(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.CreateDocument(ctx, CreateParams{Title: "a"})
	b, _ := s.CreateDocument(ctx, CreateParams{Title: "b"})
	s.CreateDocument(ctx, CreateParams{Title: "empty"})
	s.CreateDocument(ctx, CreateParams{Title: "nocap", NoMemoLog: true})

	s.WriteMemoRaw(ctx, a.ID, `[{"ts":1,"text":"x"}]`)
	s.WriteMemoRaw(ctx, b.ID, `[{"ts":2,"text":"y"}]`)

	ids, err := s.ScanDocumentsWithMemos(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	// ULID ids sort in creation order.
	if ids[0] != a.ID || ids[1] != b.ID {
		t.Errorf("unexpected scan order: %v", ids)
	}
}

func TestListDocumentsByContainer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.CreateDocument(ctx, CreateParams{Container: "work", Title: "a"})
	s.CreateDocument(ctx, CreateParams{Container: "work", Title: "b"})
	s.CreateDocument(ctx, CreateParams{Container: "home", Title: "c"})

	all, _ := s.ListDocuments(ctx, "")
	if len(all) != 3 {
		t.Errorf("expected 3, got %d", len(all))
	}
	work, _ := s.ListDocuments(ctx, "work")
	if len(work) != 2 {
		t.Errorf("expected 2, got %d", len(work))
	}
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc, _ := s.CreateDocument(ctx, CreateParams{
		Container: "deck",
		Title:     "<b>What is</b> the capital of France?",
	})

	md, err := s.Metadata(ctx, doc.ID)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if md.Container != "deck" {
		t.Errorf("unexpected container %q", md.Container)
	}
	if md.Title != "What is the capital of France?" {
		t.Errorf("unexpected snippet %q", md.Title)
	}
}

func TestTitleSnippetTruncation(t *testing.T) {
	long := strings.Repeat("ab", 40)
	snip := TitleSnippet(long)
	if len([]rune(snip)) != 53 {
		t.Errorf("expected 50 runes plus ellipsis, got %d", len([]rune(snip)))
	}
	if !strings.HasSuffix(snip, "...") {
		t.Errorf("expected ellipsis suffix, got %q", snip)
	}

	if got := TitleSnippet("<i>short</i>"); got != "short" {
		t.Errorf("expected markup stripped, got %q", got)
	}
}
