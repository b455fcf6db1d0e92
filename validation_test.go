package gplocal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want FieldErrors
	}{
		{"valid", tx("p1", "2025-06-01", "Rakoto", 10, 100), FieldErrors{}},
		{"today is valid", tx("p1", "2025-06-15", "Ra", 1, 1), FieldErrors{}},
		{"future date", tx("p1", "2025-06-16", "Rakoto", 10, 100), FieldErrors{"date": MsgInvalidDate}},
		{"bad date", tx("p1", "hier", "Rakoto", 10, 100), FieldErrors{"date": MsgInvalidDate}},
		{"empty date", tx("p1", "", "Rakoto", 10, 100), FieldErrors{"date": MsgInvalidDate}},
		{"zero weight", tx("p1", "2025-06-01", "Rakoto", 0, 100), FieldErrors{"weight": MsgWeight}},
		{"negative price", tx("p1", "2025-06-01", "Rakoto", 10, -1), FieldErrors{"price": MsgPrice}},
		{"short name", tx("p1", "2025-06-01", " R ", 10, 100), FieldErrors{"name": MsgNameTooShort}},
		{
			"new row",
			Transaction{ID: "p1", Date: "2025-06-15", Weight: N(0), Price: N(0)},
			FieldErrors{"weight": MsgWeight, "price": MsgPrice, "name": MsgNameTooShort},
		},
		{
			"typed text",
			Transaction{ID: "p1", Date: "2025-06-15", Name: "Rakoto", Weight: Text("12kg"), Price: Text("abc")},
			FieldErrors{"price": MsgPrice},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateTransaction(tc.tx, today)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ValidateTransaction() mismatch (-want +got):\n%s", diff)
			}
			if got.Valid() != (len(tc.want) == 0) {
				t.Errorf("Valid() = %v with %v", got.Valid(), got)
			}
		})
	}
}

func TestValidateCost(t *testing.T) {
	tests := []struct {
		name string
		c    Cost
		want FieldErrors
	}{
		{"valid", cost("c1", "2025-06-01", 50), FieldErrors{}},
		{"zero amount", cost("c1", "2025-06-01", 0), FieldErrors{"amount": MsgAmount}},
		{"no type", Cost{ID: "c1", Date: "2025-06-01", Amount: N(5)}, FieldErrors{"type": MsgTypeRequired}},
		{"future", cost("c1", "2026-01-01", 5), FieldErrors{"date": MsgInvalidDate}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateCost(tc.c, today)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ValidateCost() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrorsFields(t *testing.T) {
	e := FieldErrors{"weight": MsgWeight, "date": MsgInvalidDate}
	if diff := cmp.Diff([]string{"date", "weight"}, e.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}
