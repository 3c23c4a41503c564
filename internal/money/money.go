// Package money provides the fixed-point monetary amount used across the ledger.
// Amounts carry exactly two decimal places and round half-even, so repeated small
// credits stay exact and the stored string form round-trips.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const places = 2

// Amount is a 2-decimal-place monetary value. The zero value is "0.00".
type Amount struct {
	d decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// Parse parses a decimal string ("12.34", "-0.5", "7") into an Amount,
// rounding to two places half-even.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d: d.RoundBank(places)}, nil
}

// MustParse is Parse for literals in tests and seed code. Panics on bad input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromInt returns an Amount for a whole number of currency units.
func FromInt(n int64) Amount {
	return Amount{d: decimal.NewFromInt(n)}
}

// Add returns a+b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d).RoundBank(places)}
}

// Sub returns a-b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d).RoundBank(places)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{d: a.d.Neg()}
}

// MulInt returns a*n.
func (a Amount) MulInt(n int64) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(n)).RoundBank(places)}
}

// IntPart returns the integer part of the amount, truncated toward zero.
func (a Amount) IntPart() int64 {
	return a.d.IntPart()
}

// Cmp compares a and b: -1 if a<b, 0 if equal, 1 if a>b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a.d.IsPositive()
}

// IsZero reports whether a == 0.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// Equal reports whether a == b.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// String returns the canonical fixed-point form, always two places ("30.00").
func (a Amount) String() string {
	return a.d.StringFixedBank(places)
}

// MarshalJSON encodes the amount as a JSON string to keep the wire format
// fixed-point.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
