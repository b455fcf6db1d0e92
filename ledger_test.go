package gplocal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAddProduct(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	d := DefaultDocument(now)

	got, p, err := d.AddProduct("  Café Noir ", now)
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if p.ID != "cafe-noir" || p.Name != "Café Noir" {
		t.Errorf("AddProduct() = %+v, want id cafe-noir named Café Noir", p)
	}
	if len(got.Products) != 5 || got.Products[4] != p {
		t.Errorf("new product is not appended: %v", got.Products)
	}
	if len(d.Products) != 4 {
		t.Errorf("AddProduct modified its receiver: %v", d.Products)
	}

	tests := []struct {
		name string
		want error
	}{
		{"V", ErrProductName},
		{"  ", ErrProductName},
		{"??", ErrProductName},
		{"vanille", ErrProductExists},
		{"Café", ErrProductExists},
	}
	for _, tc := range tests {
		if _, _, err := d.AddProduct(tc.name, now); !errors.Is(err, tc.want) {
			t.Errorf("AddProduct(%q) error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSearchProducts(t *testing.T) {
	d := DefaultDocument(time.Now())
	if got := d.SearchProducts(""); len(got) != 4 {
		t.Errorf("SearchProducts(\"\") returned %d products, want 4", len(got))
	}
	got := d.SearchProducts("VAN")
	if len(got) != 1 || got[0].ID != "vanille" {
		t.Errorf("SearchProducts(VAN) = %v, want vanille", got)
	}
	if got := d.SearchProducts("safran"); len(got) != 0 {
		t.Errorf("SearchProducts(safran) = %v, want none", got)
	}
}

func TestAddRow(t *testing.T) {
	d := Document{Entries: map[string]ProductLedger{"vanille": scenario()}}

	d2, id := d.AddRow("vanille", Purchases, today)
	if !strings.HasPrefix(id, "p_") {
		t.Errorf("purchase id = %q, want p_ prefix", id)
	}
	l := d2.Ledger("vanille")
	if len(l.Purchases) != 2 || l.Purchases[0].ID != id {
		t.Fatalf("new purchase is not first: %v", l.Purchases)
	}
	want := Transaction{ID: id, Date: "2025-06-15", Weight: N(0), Price: N(0)}
	if diff := cmp.Diff(want, l.Purchases[0]); diff != "" {
		t.Errorf("new purchase mismatch (-want +got):\n%s", diff)
	}
	if len(d.Ledger("vanille").Purchases) != 1 {
		t.Error("AddRow modified its receiver")
	}

	d3, id := d2.AddRow("poivre", Costs, today)
	if !strings.HasPrefix(id, "c_") {
		t.Errorf("cost id = %q, want c_ prefix", id)
	}
	c, ok := d3.Cost("poivre", id)
	if !ok || c.Type != DefaultCostType || c.Date != "2025-06-15" {
		t.Errorf("new cost = %+v, %v", c, ok)
	}
	if l := d3.Ledger("poivre"); l.Purchases == nil || l.Sales == nil {
		t.Error("a new ledger must have all its sections")
	}

	_, id = d3.AddRow("poivre", Sales, today)
	if !strings.HasPrefix(id, "s_") {
		t.Errorf("sale id = %q, want s_ prefix", id)
	}
}

func TestUpdateRows(t *testing.T) {
	d := Document{Entries: map[string]ProductLedger{"vanille": scenario()}}

	updated := tx("s1", "2025-02-04", "Export SA", 9, 150)
	d2 := d.UpdateTransaction("vanille", Sales, updated)
	got, _ := d2.Transaction("vanille", Sales, "s1")
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("updated sale mismatch (-want +got):\n%s", diff)
	}
	if orig, _ := d.Transaction("vanille", Sales, "s1"); orig.Date != "2025-02-03" {
		t.Error("UpdateTransaction modified its receiver")
	}

	c := cost("c1", "2025-01-12", 75)
	c.Desc = "camion"
	d3 := d2.UpdateCost("vanille", c)
	if got, _ := d3.Cost("vanille", "c1"); got.Desc != "camion" {
		t.Errorf("updated cost = %+v", got)
	}

	// a sale id in the purchases section does not match.
	d4 := d.UpdateTransaction("vanille", Purchases, updated)
	if diff := cmp.Diff(d, d4); diff != "" {
		t.Errorf("UpdateTransaction(unknown id) changed the document (-want +got):\n%s", diff)
	}
	d5 := d.UpdateCost("vanille", cost("nope", "", 1))
	if diff := cmp.Diff(d, d5); diff != "" {
		t.Errorf("UpdateCost(unknown id) changed the document (-want +got):\n%s", diff)
	}
}

func TestDeleteRow(t *testing.T) {
	d := Document{Entries: map[string]ProductLedger{"vanille": scenario()}}

	d2 := d.DeleteRow("vanille", Purchases, "p1")
	if len(d2.Ledger("vanille").Purchases) != 0 {
		t.Errorf("purchase not deleted: %v", d2.Ledger("vanille").Purchases)
	}
	if len(d.Ledger("vanille").Purchases) != 1 {
		t.Error("DeleteRow modified its receiver")
	}

	tests := []struct {
		pid string
		s   Section
		id  string
	}{
		{"vanille", Purchases, "missing"},
		{"vanille", Sales, "p1"},
		{"vanille", Costs, "s1"},
		{"unknown", Costs, "c1"},
	}
	for _, tc := range tests {
		got := d.DeleteRow(tc.pid, tc.s, tc.id)
		if diff := cmp.Diff(d, got); diff != "" {
			t.Errorf("DeleteRow(%s, %s, %s) is not a no-op (-want +got):\n%s", tc.pid, tc.s, tc.id, diff)
		}
	}
}

func TestSetDarkMode(t *testing.T) {
	d := DefaultDocument(time.Now())
	d2, err := d.SetDarkMode(DarkModeDark)
	if err != nil || d2.Settings.DarkMode != DarkModeDark {
		t.Errorf("SetDarkMode(dark) = %q, %v", d2.Settings.DarkMode, err)
	}
	if _, err := d.SetDarkMode("sepia"); !errors.Is(err, ErrUnknownDarkMode) {
		t.Errorf("SetDarkMode(sepia) error = %v, want ErrUnknownDarkMode", err)
	}
}
