package domain

// MaxCurrencyCount is the hard ceiling on distinct currencies one account
// can authorize. It bounds both the authorization whitelist and, because
// the check is re-applied when a balance entry is first materialized, the
// number of currencies that can ever hold a balance.
const MaxCurrencyCount = 500

// Account is a per-owner ledger tracking balances of multiple currency
// types. It combines an authorization whitelist, a per-currency balance
// store, and a summary view kept in lockstep with the store on every
// mutation.
//
// The account is a plain synchronous data structure: it performs no
// locking, no I/O and no logging. Hosts embedding it in a concurrent
// environment must serialize access per account.
type Account[C comparable] struct {
	authorized map[C]struct{}
	balances   map[C]*Balance[C]
	summary    *Summary[C]
}

// NewAccount creates an empty account: no authorized currencies, no
// balances.
func NewAccount[C comparable]() *Account[C] {
	return &Account[C]{
		authorized: make(map[C]struct{}),
		balances:   make(map[C]*Balance[C]),
		summary:    NewSummary[C](),
	}
}

// Authorize admits currency into the account's whitelist, allowing deposits
// of that currency. Authorizing an already-admitted currency is a no-op.
// It fails with ErrCapacityExceeded once MaxCurrencyCount distinct
// currencies are authorized. There is no de-authorization.
func (a *Account[C]) Authorize(currency C) error {
	if _, ok := a.authorized[currency]; ok {
		return nil
	}
	if len(a.authorized) >= MaxCurrencyCount {
		return ErrCapacityExceeded
	}
	a.authorized[currency] = struct{}{}
	return nil
}

// IsAuthorized reports whether currency may receive deposits.
func (a *Account[C]) IsAuthorized(currency C) bool {
	_, ok := a.authorized[currency]
	return ok
}

// AuthorizedCount returns the number of authorized currencies.
func (a *Account[C]) AuthorizedCount() int {
	return len(a.authorized)
}

// Deposit merges amount into the stored balance for its currency, creating
// a zero entry on first deposit. It fails with ErrNotAuthorized if the
// currency is not whitelisted, ErrCapacityExceeded if materializing a new
// entry would break the currency ceiling, and ErrOverflow if the merge
// would overflow. Errors leave the account completely unchanged.
func (a *Account[C]) Deposit(amount Balance[C]) error {
	currency := amount.Currency()
	if !a.IsAuthorized(currency) {
		return ErrNotAuthorized
	}

	stored, ok := a.balances[currency]
	if !ok {
		// The capacity check is re-applied at entry-creation time so the
		// ceiling bounds materialized currencies, not just authorized ones.
		if len(a.authorized) >= MaxCurrencyCount {
			return ErrCapacityExceeded
		}
		zero := ZeroBalance(currency)
		stored = &zero
		a.balances[currency] = stored
		a.summary.Set(currency, 0)
	}

	// Merge validates overflow before mutating. A fresh zero entry cannot
	// overflow, so an error here always leaves the account unchanged.
	if err := stored.Merge(amount); err != nil {
		return err
	}
	a.summary.Set(currency, stored.Value())
	return nil
}

// Withdraw removes amount from the stored balance for currency and returns
// it as a new balance. It fails with ErrCurrencyNotFound if no entry exists
// and ErrInsufficientFunds if amount exceeds the stored value.
func (a *Account[C]) Withdraw(currency C, amount uint64) (Balance[C], error) {
	stored, ok := a.balances[currency]
	if !ok {
		return Balance[C]{}, ErrCurrencyNotFound
	}
	out, err := stored.Split(amount)
	if err != nil {
		return Balance[C]{}, err
	}
	a.summary.Set(currency, stored.Value())
	return out, nil
}

// WithdrawAll removes and returns the entire stored balance for currency.
// The entry itself survives at zero; only Close removes it. It fails with
// ErrCurrencyNotFound if no entry exists.
func (a *Account[C]) WithdrawAll(currency C) (Balance[C], error) {
	stored, ok := a.balances[currency]
	if !ok {
		return Balance[C]{}, ErrCurrencyNotFound
	}
	out := stored.WithdrawAll()
	a.summary.Set(currency, 0)
	return out, nil
}

// Close removes currency's entry from both the balance store and the
// summary and returns the full stored balance for disposal. This is the
// only operation that shrinks the account's key set. It fails with
// ErrCurrencyNotFound if no entry exists.
func (a *Account[C]) Close(currency C) (Balance[C], error) {
	stored, ok := a.balances[currency]
	if !ok {
		return Balance[C]{}, ErrCurrencyNotFound
	}
	delete(a.balances, currency)
	a.summary.Delete(currency)
	return *stored, nil
}

// BalanceValue returns the stored amount for currency, or 0 if no entry
// exists. This is the non-failing read; Withdraw treats a missing entry as
// an error.
func (a *Account[C]) BalanceValue(currency C) uint64 {
	if stored, ok := a.balances[currency]; ok {
		return stored.Value()
	}
	return 0
}

// HasCurrency reports whether a live balance entry exists for currency.
func (a *Account[C]) HasCurrency(currency C) bool {
	return a.summary.Has(currency)
}

// Summary returns the current holdings in first-deposit order.
func (a *Account[C]) Summary() []SummaryEntry[C] {
	return a.summary.Entries()
}

// Destroy consumes the account, releasing internal storage. It fails with
// ErrAccountNotEmpty while any balance entry remains, even a zero-valued
// one; callers must Close every currency first.
func (a *Account[C]) Destroy() error {
	if len(a.balances) > 0 {
		return ErrAccountNotEmpty
	}
	a.authorized = nil
	a.balances = nil
	a.summary = nil
	return nil
}
