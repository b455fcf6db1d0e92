package gplocal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Number is a numeric field of a row (weight, price, amount) as it was entered.
//
// Rows are edited in place and saved after every keystroke, so a field may hold
// text that is not (yet) a number. Number keeps that text verbatim so a save
// never alters it, and reads it with [ParseNumericOrZero].
type Number struct {
	raw    string
	quoted bool // the raw value was a JSON string, not a JSON number
}

// N returns the Number holding value.
func N[T float64 | int | int64 | decimal.Decimal](value T) Number {
	return Number{raw: newDecimal(value).String()}
}

// Text returns the Number holding the text s, as typed by a user.
func Text(s string) Number { return Number{raw: s, quoted: true} }

// Value returns the numeric value of n, zero when n is not a number.
func (n Number) Value() decimal.Decimal { return ParseNumericOrZero(n.raw) }

// String returns the raw text of n.
func (n Number) String() string {
	if n.raw == "" && !n.quoted {
		return "0"
	}
	return n.raw
}

// Equal reports whether n and m hold the same raw value.
func (n Number) Equal(m Number) bool { return n.quoted == m.quoted && n.String() == m.String() }

// MarshalJSON writes n back the way it was read: a number literal or a string.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.quoted {
		return json.Marshal(n.raw)
	}
	return []byte(n.String()), nil
}

// UnmarshalJSON accepts any JSON value. Strings are kept as text, null as a missing value.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*n = Number{}
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = Text(str)
	default:
		*n = Number{raw: s}
	}
	return nil
}

// ParseNumericOrZero reads the leading number of s, like a form field does while
// it is being typed: "12" and "12kg" are 12, "1.5e2" is 150, "", "abc" or "-" are 0.
//
// A value that is not a number is never an error: it counts as zero in every
// aggregation and fails the positive checks of validation. Numbers beyond the
// float64 range, like "1e400", count as zero too, and so do numbers too small
// to be told apart from zero.
func ParseNumericOrZero(s string) decimal.Decimal {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := numericPrefix(s)
	if end == 0 {
		return decimal.Zero
	}
	d, ok := parseFinite(strings.TrimSuffix(s[:end], "."))
	if !ok {
		return decimal.Zero
	}
	return d
}

// ParseFinite parses s, which must be a number as a whole, within the float64 range.
func ParseFinite(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || numericPrefix(s) != len(s) {
		return decimal.Zero, false
	}
	return parseFinite(strings.TrimSuffix(s, "."))
}

// parseFinite parses a well formed number. The float64 parse bounds the
// exponent before any decimal is built: decimal arithmetic on "1e2000000000"
// would expand two billion digits.
func parseFinite(s string) (decimal.Decimal, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	if f == 0 {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// numericPrefix returns the length of the longest prefix of s that is a decimal number.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			digits++
		}
		if digits > 0 {
			i = j
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
