package ports

import (
	"context"
	"errors"
	"time"

	"currency-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// LedgerAccount is the concrete account instantiation hosted by this
// service: the generic ledger aggregate keyed by string-backed currency
// tokens.
type LedgerAccount = domain.Account[domain.Currency]

// Store-level errors. The account aggregate's own errors live in domain.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

// AccountStore holds live accounts keyed by id. The aggregate itself is a
// plain synchronous structure, so the store is responsible for serializing
// access: callbacks run with exclusive (Mutate, Remove) or shared (View)
// ownership of the account, one mutation in flight at a time.
type AccountStore interface {
	// Create registers a fresh empty account under id.
	Create(ctx context.Context, id uuid.UUID) error
	// Mutate runs fn with exclusive access to the account.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*LedgerAccount) error) error
	// View runs fn with shared read access to the account.
	View(ctx context.Context, id uuid.UUID, fn func(*LedgerAccount) error) error
	// Remove runs fn with exclusive access and, if fn returns nil, deletes
	// the account from the store in the same critical section.
	Remove(ctx context.Context, id uuid.UUID, fn func(*LedgerAccount) error) error
}

// SummaryCache is a best-effort external mirror of an account's summary
// view, used to serve bulk holdings reads without touching the store.
type SummaryCache interface {
	// Get returns the cached summary payload, or nil on a miss.
	Get(ctx context.Context, accountID uuid.UUID) ([]byte, error)
	// Set stores the summary payload with a TTL.
	Set(ctx context.Context, accountID uuid.UUID, payload []byte, ttl time.Duration) error
	// Invalidate drops the cached payload for the account.
	Invalidate(ctx context.Context, accountID uuid.UUID) error
}

// BalanceView is the non-failing balance read: Held distinguishes a live
// zero-valued entry from a currency with no entry at all.
type BalanceView struct {
	Currency domain.Currency
	Value    uint64
	Held     bool
}

// WithdrawnBalance is the result handed back by withdraw and close
// operations: the amount removed from the account, tagged with its
// currency.
type WithdrawnBalance struct {
	Currency domain.Currency
	Amount   uint64
}

// LedgerService is the business surface over hosted accounts.
type LedgerService interface {
	CreateAccount(ctx context.Context) (uuid.UUID, error)
	// DestroyAccount removes an account; it fails while any balance entry
	// remains open.
	DestroyAccount(ctx context.Context, id uuid.UUID) error
	AuthorizeCurrency(ctx context.Context, id uuid.UUID, currency domain.Currency) error
	Deposit(ctx context.Context, id uuid.UUID, currency domain.Currency, amount uint64) error
	Withdraw(ctx context.Context, id uuid.UUID, currency domain.Currency, amount uint64) (*WithdrawnBalance, error)
	WithdrawAll(ctx context.Context, id uuid.UUID, currency domain.Currency) (*WithdrawnBalance, error)
	CloseBalance(ctx context.Context, id uuid.UUID, currency domain.Currency) (*WithdrawnBalance, error)
	GetBalance(ctx context.Context, id uuid.UUID, currency domain.Currency) (*BalanceView, error)
	GetSummary(ctx context.Context, id uuid.UUID) ([]domain.SummaryEntry[domain.Currency], error)
}
