package gplocal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/etnz/gplocal/kv"
)

// DocumentKey is the key under which the document is stored.
const DocumentKey = "gplocal-db-v1"

// LoadResult tells how a document was obtained by [Store.Load].
type LoadResult string

const (
	LoadOK      LoadResult = "ok"      // the stored document
	LoadAbsent  LoadResult = "absent"  // nothing stored yet, default document
	LoadCorrupt LoadResult = "corrupt" // stored bytes are not a document, default document
	LoadFailed  LoadResult = "error"   // the backend failed, default document
)

// Recorder observes the activity of a Store.
type Recorder interface {
	DocumentLoaded(result LoadResult, elapsed time.Duration)
	DocumentSaved(err error, elapsed time.Duration)
	DocumentImported(err error)
}

type noopRecorder struct{}

func (noopRecorder) DocumentLoaded(LoadResult, time.Duration) {}
func (noopRecorder) DocumentSaved(error, time.Duration)       {}
func (noopRecorder) DocumentImported(error)                   {}

// Store loads and saves the Document in a key-value backend.
//
// It is the only place where the document is read or written: everything else
// works on Document values.
type Store struct {
	backend kv.Store
	key     string
	rec     Recorder
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the document under key instead of DocumentKey.
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// WithRecorder reports the store activity to r.
func WithRecorder(r Recorder) Option { return func(s *Store) { s.rec = r } }

// WithClock sets the clock used to date the default document.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// NewStore returns a Store persisting into backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{backend: backend, key: DocumentKey, rec: noopRecorder{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Load returns the stored document.
//
// When nothing is stored, or what is stored cannot be read as a document, it
// returns the default document instead: this is never an error.
func (s *Store) Load(ctx context.Context) Document {
	doc, _ := s.timedLoad(ctx)
	return doc
}

// ErrUnreadable is returned by Fetch when the backend failed to read the document.
var ErrUnreadable = errors.New("stored document cannot be read")

// Fetch is Load for a caller that is going to save the document.
//
// A failing backend is an error instead of the default document: saving the
// defaults would overwrite a document that is only out of reach. Absent and
// corrupt documents still give the default document.
func (s *Store) Fetch(ctx context.Context) (Document, error) {
	doc, err := s.timedLoad(ctx)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// timedLoad loads and records the document. The error is set only for LoadFailed.
func (s *Store) timedLoad(ctx context.Context) (Document, error) {
	start := time.Now()
	doc, result, err := s.load(ctx)
	s.rec.DocumentLoaded(result, time.Since(start))
	return doc, err
}

func (s *Store) load(ctx context.Context) (Document, LoadResult, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return DefaultDocument(s.now()), LoadAbsent, nil
	}
	if err != nil {
		log.Printf("warning, cannot read document %q from %s, using the default document instead: %v", s.key, s.backend.Driver(), err)
		return DefaultDocument(s.now()), LoadFailed, fmt.Errorf("%w from %s: %w", ErrUnreadable, s.backend.Driver(), err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		log.Printf("warning, stored document %q is not valid, using the default document instead: %v", s.key, err)
		return DefaultDocument(s.now()), LoadCorrupt, nil
	}
	return doc, LoadOK, nil
}

// Save replaces the stored document by doc.
func (s *Store) Save(ctx context.Context, doc Document) error {
	start := time.Now()
	err := s.save(ctx, doc)
	s.rec.DocumentSaved(err, time.Since(start))
	return err
}

func (s *Store) save(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot encode document: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("cannot write document %q to %s: %w", s.key, s.backend.Driver(), err)
	}
	return nil
}

// decodeDocument parses a stored document. It must be a JSON object.
func decodeDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, errors.New("not a JSON object")
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, err
	}
	if doc.Products == nil {
		doc.Products = []Product{}
	}
	if doc.Entries == nil {
		doc.Entries = map[string]ProductLedger{}
	}
	return doc, nil
}
