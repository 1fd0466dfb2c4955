package domain

import "math"

// Balance is a non-negative amount of a single currency. Amounts are held
// in the currency's smallest unit (cents, satoshi, points). Balances are
// combinable via Merge and splittable via Split; the amount can never go
// negative and never silently wraps.
type Balance[C comparable] struct {
	currency C
	value    uint64
}

// ZeroBalance creates an empty balance tagged with the given currency.
func ZeroBalance[C comparable](currency C) Balance[C] {
	return Balance[C]{currency: currency}
}

// NewBalance creates a balance of the given currency and amount.
func NewBalance[C comparable](currency C, value uint64) Balance[C] {
	return Balance[C]{currency: currency, value: value}
}

// Currency returns the currency this balance is tagged with.
func (b Balance[C]) Currency() C {
	return b.currency
}

// Value returns the stored amount.
func (b Balance[C]) Value() uint64 {
	return b.value
}

// IsZero reports whether the stored amount is zero.
func (b Balance[C]) IsZero() bool {
	return b.value == 0
}

// Merge adds other into b. It fails with ErrCurrencyMismatch if the two
// balances carry different currencies and with ErrOverflow if the sum would
// exceed the amount representation. On error b is left untouched.
func (b *Balance[C]) Merge(other Balance[C]) error {
	if b.currency != other.currency {
		return ErrCurrencyMismatch
	}
	if other.value > math.MaxUint64-b.value {
		return ErrOverflow
	}
	b.value += other.value
	return nil
}

// Split removes amount from b and returns it as a new balance of the same
// currency. It fails with ErrInsufficientFunds if amount exceeds the stored
// value, leaving b untouched.
func (b *Balance[C]) Split(amount uint64) (Balance[C], error) {
	if amount > b.value {
		return Balance[C]{}, ErrInsufficientFunds
	}
	b.value -= amount
	return Balance[C]{currency: b.currency, value: amount}, nil
}

// WithdrawAll removes and returns the entire stored amount, leaving b at
// zero.
func (b *Balance[C]) WithdrawAll() Balance[C] {
	out := Balance[C]{currency: b.currency, value: b.value}
	b.value = 0
	return out
}
