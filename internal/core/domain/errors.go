package domain

import "errors"

// Sentinel errors returned by the ledger core. Callers discriminate with
// errors.Is; the service layer maps them to transport-level errors.
var (
	// ErrCapacityExceeded signals that authorizing or materializing one more
	// currency would exceed MaxCurrencyCount.
	ErrCapacityExceeded = errors.New("currency capacity exceeded")

	// ErrNotAuthorized signals a deposit into a currency that was never
	// authorized on the account.
	ErrNotAuthorized = errors.New("currency not authorized")

	// ErrCurrencyNotFound signals a withdraw or close referencing a currency
	// with no live balance entry.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrInsufficientFunds signals a withdrawal larger than the stored balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverflow signals a deposit that would overflow the balance amount.
	ErrOverflow = errors.New("balance amount overflow")

	// ErrAccountNotEmpty signals a destroy while balance entries remain open.
	ErrAccountNotEmpty = errors.New("account has open balance entries")

	// ErrCurrencyMismatch signals a merge of balances tagged with different
	// currencies. This is an internal-consistency failure, never expected
	// during normal operation.
	ErrCurrencyMismatch = errors.New("balance currency mismatch")
)
