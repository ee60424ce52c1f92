package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
)

// Amount is a 128-bit signed integer holding a quantity of the payment
// asset in its smallest unit. All arithmetic is integer-only and checked:
// any result outside the 128-bit signed range fails with ErrMathOverflow
// instead of wrapping.
type Amount struct {
	n *big.Int
}

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// NewAmount creates an Amount from an int64 value.
func NewAmount(v int64) Amount {
	return Amount{n: big.NewInt(v)}
}

// ParseAmount parses a base-10 string into an Amount.
func ParseAmount(s string) (Amount, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("rentacar: invalid amount %q", s)
	}
	if !inRange(n) {
		return Amount{}, ErrMathOverflow
	}
	return Amount{n: n}, nil
}

func inRange(n *big.Int) bool {
	return n.Cmp(minInt128) >= 0 && n.Cmp(maxInt128) <= 0
}

func (a Amount) val() *big.Int {
	if a.n == nil {
		return new(big.Int)
	}
	return a.n
}

func checked(n *big.Int) (Amount, error) {
	if !inRange(n) {
		return Amount{}, ErrMathOverflow
	}
	return Amount{n: n}, nil
}

// Add returns a + b, failing with ErrMathOverflow when the result leaves
// the 128-bit signed range.
func (a Amount) Add(b Amount) (Amount, error) {
	return checked(new(big.Int).Add(a.val(), b.val()))
}

// Sub returns a - b with the same overflow behavior as Add.
func (a Amount) Sub(b Amount) (Amount, error) {
	return checked(new(big.Int).Sub(a.val(), b.val()))
}

// Mul returns a * b with the same overflow behavior as Add.
func (a Amount) Mul(b Amount) (Amount, error) {
	return checked(new(big.Int).Mul(a.val(), b.val()))
}

// Div returns a / b truncated toward zero. Division by zero is reported
// as ErrMathOverflow, matching the checked-division convention used by
// the rest of the arithmetic.
func (a Amount) Div(b Amount) (Amount, error) {
	if b.val().Sign() == 0 {
		return Amount{}, ErrMathOverflow
	}
	return checked(new(big.Int).Quo(a.val(), b.val()))
}

// Cmp compares a and b, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int { return a.val().Cmp(b.val()) }

// Sign returns -1, 0 or 1 depending on the sign of the amount.
func (a Amount) Sign() int { return a.val().Sign() }

// IsPositive returns true if the amount is greater than zero.
func (a Amount) IsPositive() bool { return a.Sign() > 0 }

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool { return a.Sign() == 0 }

// Equal returns true if both amounts hold the same value.
func (a Amount) Equal(b Amount) bool { return a.Cmp(b) == 0 }

// GreaterThan returns true if a > b.
func (a Amount) GreaterThan(b Amount) bool { return a.Cmp(b) > 0 }

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) bool { return a.Cmp(b) < 0 }

func (a Amount) String() string { return a.val().String() }

// MarshalJSON encodes the amount as a decimal string. 128-bit values do
// not survive a round trip through JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Fall back to a bare number literal.
		s = string(data)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer so Amount maps onto NUMERIC columns.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for NUMERIC, text and integer columns.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = NewAmount(0)
		return nil
	case int64:
		*a = NewAmount(v)
		return nil
	case []byte:
		parsed, err := ParseAmount(string(v))
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	case string:
		parsed, err := ParseAmount(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	default:
		return fmt.Errorf("rentacar: cannot scan %T into Amount", src)
	}
}
