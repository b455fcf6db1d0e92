package gplocal

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/etnz/gplocal/date"
)

// Validation is advisory: a row that fails it is still stored as is.
// The messages are shown next to the offending fields.

// Validation messages.
const (
	MsgInvalidDate  = "Date invalide"
	MsgWeight       = "Poids doit être > 0"
	MsgPrice        = "Prix doit être > 0"
	MsgNameTooShort = "Nom trop court"
	MsgAmount       = "Montant > 0"
	MsgTypeRequired = "Type requis"
)

// FieldErrors maps a row field name (as in JSON) to its validation message.
type FieldErrors map[string]string

// Valid reports whether there is no validation message.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// Fields returns the invalid field names, sorted.
func (e FieldErrors) Fields() []string { return slices.Sorted(maps.Keys(e)) }

// ValidateTransaction checks a purchase or a sale.
func ValidateTransaction(tx Transaction, today date.Date) FieldErrors {
	errs := FieldErrors{}
	if !validDay(tx.Date, today) {
		errs["date"] = MsgInvalidDate
	}
	if !tx.Weight.Value().IsPositive() {
		errs["weight"] = MsgWeight
	}
	if !tx.Price.Value().IsPositive() {
		errs["price"] = MsgPrice
	}
	if utf8.RuneCountInString(strings.TrimSpace(tx.Name)) < 2 {
		errs["name"] = MsgNameTooShort
	}
	return errs
}

// ValidateCost checks an ancillary cost.
func ValidateCost(c Cost, today date.Date) FieldErrors {
	errs := FieldErrors{}
	if !validDay(c.Date, today) {
		errs["date"] = MsgInvalidDate
	}
	if !c.Amount.Value().IsPositive() {
		errs["amount"] = MsgAmount
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Type)) < 2 {
		errs["type"] = MsgTypeRequired
	}
	return errs
}

// validDay reports whether s is a date that is not after today.
func validDay(s string, today date.Date) bool {
	d, err := date.Parse(s)
	return err == nil && !d.After(today)
}
