package ranges

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Number is the set of element types the numeric combinators work on.
type Number interface {
	constraints.Integer | constraints.Float
}

// Add is a combinator for Sum, Multiply and Contract.
func Add[N Number](a, b N) N {
	return a + b
}

// Mul is a combinator for Sum, Multiply and Contract.
func Mul[N Number](a, b N) N {
	return a * b
}

// AddDecimal adds arbitrary-precision decimals.
func AddDecimal(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// MulDecimal multiplies arbitrary-precision decimals.
func MulDecimal(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}
