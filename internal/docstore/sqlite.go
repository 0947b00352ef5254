package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Adapter on a local SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id           TEXT PRIMARY KEY,
		container    TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL DEFAULT '',
		has_memo_log INTEGER NOT NULL DEFAULT 1,
		memo_log     TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_container ON documents(container);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateParams holds parameters for creating a document.
type CreateParams struct {
	Container string
	Title     string
	NoMemoLog bool // create without the memo log attribute
}

// CreateDocument inserts a new document and returns it.
func (s *SQLiteStore) CreateDocument(ctx context.Context, p CreateParams) (*Document, error) {
	doc := &Document{
		ID:         s.newID(),
		Container:  p.Container,
		Title:      p.Title,
		HasMemoLog: !p.NoMemoLog,
	}

	hasLog := 1
	if p.NoMemoLog {
		hasLog = 0
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, container, title, has_memo_log, memo_log, created_at)
		 VALUES (?, ?, ?, ?, '', ?)`,
		doc.ID, p.Container, p.Title, hasLog, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

// GetDocument returns one document by id.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document
	var hasLog int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, container, title, has_memo_log FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Container, &doc.Title, &hasLog)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	doc.HasMemoLog = hasLog != 0
	return &doc, nil
}

// ListDocuments returns all documents, optionally filtered by container.
func (s *SQLiteStore) ListDocuments(ctx context.Context, container string) ([]Document, error) {
	where := "1=1"
	args := []interface{}{}
	if container != "" {
		where = "container = ?"
		args = append(args, container)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, container, title, has_memo_log FROM documents WHERE `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var hasLog int
		if err := rows.Scan(&doc.ID, &doc.Container, &doc.Title, &hasLog); err != nil {
			return nil, err
		}
		doc.HasMemoLog = hasLog != 0
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// HasMemoField implements Adapter.
func (s *SQLiteStore) HasMemoField(ctx context.Context, id string) (bool, error) {
	var hasLog int
	err := s.db.QueryRowContext(ctx,
		`SELECT has_memo_log FROM documents WHERE id = ?`, id).Scan(&hasLog)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err != nil {
		return false, err
	}
	return hasLog != 0, nil
}

// ReadMemoRaw implements Adapter.
func (s *SQLiteStore) ReadMemoRaw(ctx context.Context, id string) (string, error) {
	var hasLog int
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT has_memo_log, memo_log FROM documents WHERE id = ?`, id).Scan(&hasLog, &raw)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err != nil {
		return "", err
	}
	if hasLog == 0 {
		return "", nil
	}
	return raw, nil
}

// WriteMemoRaw implements Adapter. The write is committed before the
// call returns; the in-memory cache mirrors it only afterwards.
func (s *SQLiteStore) WriteMemoRaw(ctx context.Context, id string, raw string) error {
	has, err := s.HasMemoField(ctx, id)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: %s", ErrNoMemoField, id)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET memo_log = ? WHERE id = ?`, raw, id)
	if err != nil {
		return fmt.Errorf("write memo log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return nil
}

// ScanDocumentsWithMemos implements Adapter. Order is by id, which for
// ULID ids is also creation order.
func (s *SQLiteStore) ScanDocumentsWithMemos(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE has_memo_log = 1 AND memo_log != '' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Metadata implements Adapter.
func (s *SQLiteStore) Metadata(ctx context.Context, id string) (Metadata, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Container: doc.Container,
		Title:     TitleSnippet(doc.Title),
	}, nil
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var markupRe = regexp.MustCompile(`<[^>]+>`)

// snippetMax is the rune budget for a title snippet.
const snippetMax = 50

// TitleSnippet strips markup from a display title and truncates it.
func TitleSnippet(title string) string {
	snip := strings.TrimSpace(markupRe.ReplaceAllString(title, ""))
	runes := []rune(snip)
	if len(runes) > snippetMax {
		return string(runes[:snippetMax]) + "..."
	}
	return snip
}
