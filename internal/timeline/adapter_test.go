package timeline

import (
	"context"
	"fmt"

	"github.com/rcliao/memo-timeline/internal/docstore"
)

// fakeAdapter is an in-memory docstore.Adapter with injectable failures.
type fakeAdapter struct {
	order []string
	docs  map[string]*fakeDoc
}

type fakeDoc struct {
	container string
	title     string
	hasLog    bool
	raw       string

	readErr  error
	writeErr error
	metaErr  error
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{docs: map[string]*fakeDoc{}}
}

func (f *fakeAdapter) addDoc(id, container, title string) *fakeDoc {
	d := &fakeDoc{container: container, title: title, hasLog: true}
	f.order = append(f.order, id)
	f.docs[id] = d
	return d
}

func (f *fakeAdapter) get(id string) (*fakeDoc, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", docstore.ErrDocumentNotFound, id)
	}
	return d, nil
}

func (f *fakeAdapter) HasMemoField(_ context.Context, id string) (bool, error) {
	d, err := f.get(id)
	if err != nil {
		return false, err
	}
	return d.hasLog, nil
}

func (f *fakeAdapter) ReadMemoRaw(_ context.Context, id string) (string, error) {
	d, err := f.get(id)
	if err != nil {
		return "", err
	}
	if d.readErr != nil {
		return "", d.readErr
	}
	return d.raw, nil
}

func (f *fakeAdapter) WriteMemoRaw(_ context.Context, id string, raw string) error {
	d, err := f.get(id)
	if err != nil {
		return err
	}
	if !d.hasLog {
		return fmt.Errorf("%w: %s", docstore.ErrNoMemoField, id)
	}
	if d.writeErr != nil {
		return d.writeErr
	}
	d.raw = raw
	return nil
}

func (f *fakeAdapter) ScanDocumentsWithMemos(_ context.Context) ([]string, error) {
	var ids []string
	for _, id := range f.order {
		d := f.docs[id]
		if d.hasLog && d.raw != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeAdapter) Metadata(_ context.Context, id string) (docstore.Metadata, error) {
	d, err := f.get(id)
	if err != nil {
		return docstore.Metadata{}, err
	}
	if d.metaErr != nil {
		return docstore.Metadata{}, d.metaErr
	}
	return docstore.Metadata{Container: d.container, Title: docstore.TitleSnippet(d.title)}, nil
}
