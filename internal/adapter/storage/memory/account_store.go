package memory

import (
	"context"
	"sync"

	"currency-ledger/internal/core/domain"
	"currency-ledger/internal/core/ports"

	"github.com/google/uuid"
)

// entry pairs an account with its own lock. The account aggregate assumes
// exclusive access per operation, so every callback runs under this lock;
// the table-level RWMutex only guards the map itself.
type entry struct {
	mu      sync.RWMutex
	acct    *ports.LedgerAccount
	removed bool // set under mu by Remove; callers that raced the removal bail out
}

// AccountStore implements ports.AccountStore with in-process storage.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*entry
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[uuid.UUID]*entry)}
}

// Create registers a fresh empty account under id.
func (s *AccountStore) Create(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; ok {
		return ports.ErrAccountExists
	}
	s.accounts[id] = &entry{acct: domain.NewAccount[domain.Currency]()}
	return nil
}

// Mutate runs fn with exclusive access to the account.
func (s *AccountStore) Mutate(_ context.Context, id uuid.UUID, fn func(*ports.LedgerAccount) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ports.ErrAccountNotFound
	}
	return fn(e.acct)
}

// View runs fn with shared read access to the account.
func (s *AccountStore) View(_ context.Context, id uuid.UUID, fn func(*ports.LedgerAccount) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.removed {
		return ports.ErrAccountNotFound
	}
	return fn(e.acct)
}

// Remove runs fn with exclusive access and deletes the account if fn
// returns nil. Holding the table lock for the whole critical section keeps
// a concurrent Mutate from acquiring a half-removed account.
func (s *AccountStore) Remove(_ context.Context, id uuid.UUID, fn func(*ports.LedgerAccount) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.accounts[id]
	if !ok {
		return ports.ErrAccountNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.acct); err != nil {
		return err
	}
	e.removed = true
	delete(s.accounts, id)
	return nil
}

// Len returns the number of live accounts.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func (s *AccountStore) lookup(id uuid.UUID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.accounts[id]
	if !ok {
		return nil, ports.ErrAccountNotFound
	}
	return e, nil
}
