package gplocal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etnz/gplocal/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var fixedNow = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

// spyRecorder records the notifications of a Store.
type spyRecorder struct {
	loads   []LoadResult
	saves   []error
	imports []error
}

func (r *spyRecorder) DocumentLoaded(result LoadResult, _ time.Duration) {
	r.loads = append(r.loads, result)
}
func (r *spyRecorder) DocumentSaved(err error, _ time.Duration) { r.saves = append(r.saves, err) }
func (r *spyRecorder) DocumentImported(err error)              { r.imports = append(r.imports, err) }

// failingBackend is a kv.Store whose every operation fails.
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, error) { return nil, errors.New("offline") }
func (failingBackend) Put(context.Context, string, []byte) error   { return errors.New("offline") }
func (failingBackend) Close() error                                { return nil }
func (failingBackend) Driver() kv.Driver                           { return "failing" }

// unreadableBackend is a memory kv.Store whose reads fail, like an unreachable server.
type unreadableBackend struct{ *kv.Memory }

func (unreadableBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func newTestStore(backend kv.Store) (*Store, *spyRecorder) {
	rec := &spyRecorder{}
	return NewStore(backend, WithClock(func() time.Time { return fixedNow }), WithRecorder(rec)), rec
}

func TestStoreLoadAbsent(t *testing.T) {
	s, rec := newTestStore(kv.NewMemory())
	got := s.Load(context.Background())
	if diff := cmp.Diff(DefaultDocument(fixedNow), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]LoadResult{LoadAbsent}, rec.loads); diff != "" {
		t.Errorf("recorded loads mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, rec := newTestStore(kv.NewMemory())

	d := s.Load(ctx)
	d, _ = d.AddRow("vanille", Purchases, today)
	d, _ = d.AddRow("vanille", Costs, today)
	d = d.UpdateTransaction("vanille", Purchases, Transaction{ID: d.Ledger("vanille").Purchases[0].ID, Date: "2025-06-01", Name: "Rakoto", Weight: Text("12,5"), Price: N(30000)})
	d.EnsureProductLedger("orphan")
	d, _ = d.SetDarkMode(DarkModeDark)

	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got := s.Load(ctx)
	if diff := cmp.Diff(d, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() after Save() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]LoadResult{LoadAbsent, LoadOK}, rec.loads); diff != "" {
		t.Errorf("recorded loads mismatch (-want +got):\n%s", diff)
	}
	if len(rec.saves) != 1 || rec.saves[0] != nil {
		t.Errorf("recorded saves = %v", rec.saves)
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	for _, stored := range []string{`not json`, `[1,2]`, `"text"`, `{"products": 3}`, ``} {
		t.Run(stored, func(t *testing.T) {
			ctx := context.Background()
			backend := kv.NewMemory()
			backend.Put(ctx, DocumentKey, []byte(stored))
			s, rec := newTestStore(backend)

			got := s.Load(ctx)
			if diff := cmp.Diff(DefaultDocument(fixedNow), got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
			if rec.loads[0] != LoadCorrupt {
				t.Errorf("recorded load = %q, want corrupt", rec.loads[0])
			}
		})
	}
}

func TestStoreLoadPartial(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	backend.Put(ctx, DocumentKey, []byte(`{"settings":{"darkMode":"light"}}`))
	s, _ := newTestStore(backend)

	got := s.Load(ctx)
	if got.Products == nil || got.Entries == nil {
		t.Errorf("Load() = %+v, want non nil products and entries", got)
	}
	if got.Settings.DarkMode != DarkModeLight {
		t.Errorf("Load() dark mode = %q, want light", got.Settings.DarkMode)
	}
}

func TestStoreBackendFailure(t *testing.T) {
	s, rec := newTestStore(failingBackend{})
	got := s.Load(context.Background())
	if len(got.Products) != 4 {
		t.Errorf("Load() on a failing backend = %v, want the default document", got.Products)
	}
	if rec.loads[0] != LoadFailed {
		t.Errorf("recorded load = %q, want error", rec.loads[0])
	}
	if err := s.Save(context.Background(), got); err == nil {
		t.Error("Save() on a failing backend succeeded")
	}
}

func TestStoreWithKey(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := NewStore(backend, WithKey("other"))
	if err := s.Save(ctx, DefaultDocument(fixedNow)); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Get(ctx, "other"); err != nil {
		t.Errorf("document not saved under its key: %v", err)
	}
	if _, err := backend.Get(ctx, DocumentKey); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("document saved under the default key too: %v", err)
	}
}

func TestStoreFetch(t *testing.T) {
	ctx := context.Background()

	s, _ := newTestStore(kv.NewMemory())
	got, err := s.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() of an absent document error = %v", err)
	}
	if diff := cmp.Diff(DefaultDocument(fixedNow), got); diff != "" {
		t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
	}

	corrupt := kv.NewMemory()
	corrupt.Put(ctx, DocumentKey, []byte("[1, 2]"))
	s, _ = newTestStore(corrupt)
	if _, err := s.Fetch(ctx); err != nil {
		t.Errorf("Fetch() of a corrupt document error = %v, want the default document", err)
	}

	s, rec := newTestStore(failingBackend{})
	if _, err := s.Fetch(ctx); !errors.Is(err, ErrUnreadable) {
		t.Errorf("Fetch() on a failing backend error = %v, want %v", err, ErrUnreadable)
	}
	if diff := cmp.Diff([]LoadResult{LoadFailed}, rec.loads); diff != "" {
		t.Errorf("recorded loads mismatch (-want +got):\n%s", diff)
	}
}
