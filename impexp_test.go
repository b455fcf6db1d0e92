package gplocal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/gplocal/kv"
)

const stored = `{"products":[{"id":"vanille","name":"Vanille","createdAt":"2025-01-01T00:00:00.000Z"}],` +
	`"entries":{"vanille":{"purchases":[{"id":"p1","date":"2025-01-10","name":"Local","weight":10,"price":"100"}],"sales":[],"costs":[]}},` +
	`"settings":{"darkMode":"dark"}}`

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"valid", `{"products":[],"entries":{}}`, nil},
		{"no entries", `{"products":[{"id":"a","name":"A"}]}`, nil},
		{"not json", `{"products":`, ErrInvalidImport},
		{"no products", `{"entries":{}}`, ErrMissingProducts},
		{"products not a list", `{"products":{"a":1}}`, ErrMissingProducts},
		{"null products", `{"products":null}`, ErrMissingProducts},
		{"array", `[]`, ErrMissingProducts},
		{"bad row", `{"products":[],"entries":{"a":{"purchases":[{"id":3}]}}}`, ErrInvalidImport},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tc.payload))
			if !errors.Is(err, tc.want) || (tc.want == nil) != (err == nil) {
				t.Errorf("ParseDocument() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestImportFailureLeavesStoreUntouched(t *testing.T) {
	for _, payload := range []string{`{"entries":{"vanille":{"purchases":[]}}}`, `garbage`} {
		ctx := context.Background()
		backend := kv.NewMemory()
		backend.Put(ctx, DocumentKey, []byte(stored))
		s, rec := newTestStore(backend)

		if _, err := s.Import(ctx, strings.NewReader(payload)); err == nil {
			t.Errorf("Import(%s) succeeded, want an error", payload)
		}
		got, _ := backend.Get(ctx, DocumentKey)
		if string(got) != stored {
			t.Errorf("Import(%s) changed the stored bytes:\n%s", payload, got)
		}
		if len(rec.saves) != 0 {
			t.Errorf("Import(%s) saved %d times, want 0", payload, len(rec.saves))
		}
		if len(rec.imports) != 1 || rec.imports[0] == nil {
			t.Errorf("recorded imports = %v, want one failure", rec.imports)
		}
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	backend.Put(ctx, DocumentKey, []byte(stored))
	s, rec := newTestStore(backend)

	payload := `{"products":[{"id":"vanille","name":"Vanilla"},{"id":"poivre","name":"Poivre"}],
	"entries":{"vanille":{"purchases":[
		{"id":"p1","date":"2025-01-10","name":"Incoming","weight":1,"price":1},
		{"id":"p0","date":"2025-01-01","name":"Older","weight":2,"price":3}]}}}`
	merged, err := s.Import(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(merged.Products) != 2 || merged.Products[0].Name != "Vanille" {
		t.Errorf("merged products = %v", merged.Products)
	}
	p := merged.Entries["vanille"].Purchases
	if len(p) != 2 || p[0].ID != "p0" || p[1].Name != "Local" {
		t.Errorf("merged purchases = %v", p)
	}
	if merged.Settings.DarkMode != DarkModeDark {
		t.Errorf("merged settings = %v, want the local ones", merged.Settings)
	}
	if got := s.Load(ctx); len(got.Entries["vanille"].Purchases) != 2 {
		t.Errorf("merged document not saved: %v", got.Entries)
	}
	if len(rec.saves) != 1 {
		t.Errorf("Import() saved %d times, want 1", len(rec.saves))
	}
}

func TestImportDocumentRequiresProducts(t *testing.T) {
	s, _ := newTestStore(kv.NewMemory())
	if _, err := s.ImportDocument(context.Background(), Document{}); !errors.Is(err, ErrMissingProducts) {
		t.Errorf("ImportDocument(no products) error = %v, want ErrMissingProducts", err)
	}
}

func TestImportRefusedWhenStoreUnreadable(t *testing.T) {
	ctx := context.Background()
	backend := unreadableBackend{kv.NewMemory()}
	backend.Memory.Put(ctx, DocumentKey, []byte(stored))
	s, rec := newTestStore(backend)

	_, err := s.Import(ctx, strings.NewReader(`{"products":[{"id":"poivre","name":"Poivre"}]}`))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("Import() error = %v, want %v", err, ErrUnreadable)
	}
	got, _ := backend.Memory.Get(ctx, DocumentKey)
	if string(got) != stored {
		t.Errorf("Import() overwrote the stored document:\n%s", got)
	}
	if len(rec.saves) != 0 {
		t.Errorf("Import() saved %d times, want 0", len(rec.saves))
	}
}
