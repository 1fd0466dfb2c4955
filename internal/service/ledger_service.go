package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"currency-ledger/internal/core/domain"
	"currency-ledger/internal/core/ports"
	"currency-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultSummaryTTL = 5 * time.Minute

// LedgerServiceImpl implements ports.LedgerService on top of an
// AccountStore. The store serializes access per account; the service maps
// core ledger errors to transport errors and keeps the external summary
// cache coherent (invalidate-on-mutation, best-effort).
type LedgerServiceImpl struct {
	store    ports.AccountStore
	cache    ports.SummaryCache // nil = summary caching disabled
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(store ports.AccountStore, cache ports.SummaryCache, cacheTTL time.Duration, log zerolog.Logger) *LedgerServiceImpl {
	if cacheTTL <= 0 {
		cacheTTL = defaultSummaryTTL
	}
	return &LedgerServiceImpl{
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// CreateAccount registers a fresh empty account and returns its id.
func (s *LedgerServiceImpl) CreateAccount(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	if err := s.store.Create(ctx, id); err != nil {
		return uuid.Nil, mapLedgerError(err)
	}

	s.log.Info().Str("account_id", id.String()).Msg("account created")
	return id, nil
}

// DestroyAccount removes an account. The emptiness check and the removal
// happen under the same account lock, so no balance can slip in between.
func (s *LedgerServiceImpl) DestroyAccount(ctx context.Context, id uuid.UUID) error {
	err := s.store.Remove(ctx, id, func(a *ports.LedgerAccount) error {
		return a.Destroy()
	})
	if err != nil {
		return mapLedgerError(err)
	}

	s.invalidateSummary(ctx, id)
	s.log.Info().Str("account_id", id.String()).Msg("account destroyed")
	return nil
}

// AuthorizeCurrency admits a currency into the account's whitelist.
func (s *LedgerServiceImpl) AuthorizeCurrency(ctx context.Context, id uuid.UUID, currency domain.Currency) error {
	if currency == "" {
		return apperror.Validation("currency must not be empty")
	}

	err := s.store.Mutate(ctx, id, func(a *ports.LedgerAccount) error {
		return a.Authorize(currency)
	})
	if err != nil {
		return mapLedgerError(err)
	}

	s.log.Info().
		Str("account_id", id.String()).
		Str("currency", currency.String()).
		Msg("currency authorized")
	return nil
}

// Deposit merges amount into the account's balance for currency.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, id uuid.UUID, currency domain.Currency, amount uint64) error {
	if amount == 0 {
		return apperror.Validation("deposit amount must be positive")
	}

	err := s.store.Mutate(ctx, id, func(a *ports.LedgerAccount) error {
		return a.Deposit(domain.NewBalance(currency, amount))
	})
	if err != nil {
		return mapLedgerError(err)
	}

	s.invalidateSummary(ctx, id)
	s.log.Info().
		Str("account_id", id.String()).
		Str("currency", currency.String()).
		Uint64("amount", amount).
		Msg("deposit processed")
	return nil
}

// Withdraw removes amount from the account's balance for currency and
// returns the withdrawn balance.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, id uuid.UUID, currency domain.Currency, amount uint64) (*ports.WithdrawnBalance, error) {
	if amount == 0 {
		return nil, apperror.Validation("withdrawal amount must be positive")
	}

	var out domain.Balance[domain.Currency]
	err := s.store.Mutate(ctx, id, func(a *ports.LedgerAccount) error {
		var err error
		out, err = a.Withdraw(currency, amount)
		return err
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}

	s.invalidateSummary(ctx, id)
	s.log.Info().
		Str("account_id", id.String()).
		Str("currency", currency.String()).
		Uint64("amount", out.Value()).
		Msg("withdrawal processed")
	return &ports.WithdrawnBalance{Currency: out.Currency(), Amount: out.Value()}, nil
}

// WithdrawAll removes and returns the entire balance for currency, leaving
// the entry open at zero.
func (s *LedgerServiceImpl) WithdrawAll(ctx context.Context, id uuid.UUID, currency domain.Currency) (*ports.WithdrawnBalance, error) {
	var out domain.Balance[domain.Currency]
	err := s.store.Mutate(ctx, id, func(a *ports.LedgerAccount) error {
		var err error
		out, err = a.WithdrawAll(currency)
		return err
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}

	s.invalidateSummary(ctx, id)
	s.log.Info().
		Str("account_id", id.String()).
		Str("currency", currency.String()).
		Uint64("amount", out.Value()).
		Msg("full withdrawal processed")
	return &ports.WithdrawnBalance{Currency: out.Currency(), Amount: out.Value()}, nil
}

// CloseBalance removes the currency's entry entirely and returns the final
// balance for disposal.
func (s *LedgerServiceImpl) CloseBalance(ctx context.Context, id uuid.UUID, currency domain.Currency) (*ports.WithdrawnBalance, error) {
	var out domain.Balance[domain.Currency]
	err := s.store.Mutate(ctx, id, func(a *ports.LedgerAccount) error {
		var err error
		out, err = a.Close(currency)
		return err
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}

	s.invalidateSummary(ctx, id)
	s.log.Info().
		Str("account_id", id.String()).
		Str("currency", currency.String()).
		Uint64("amount", out.Value()).
		Msg("balance entry closed")
	return &ports.WithdrawnBalance{Currency: out.Currency(), Amount: out.Value()}, nil
}

// GetBalance returns the non-failing balance read for currency.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, id uuid.UUID, currency domain.Currency) (*ports.BalanceView, error) {
	view := &ports.BalanceView{Currency: currency}
	err := s.store.View(ctx, id, func(a *ports.LedgerAccount) error {
		view.Held = a.HasCurrency(currency)
		view.Value = a.BalanceValue(currency)
		return nil
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}
	return view, nil
}

// GetSummary returns the account's holdings in first-deposit order, served
// read-through from the summary cache when one is configured.
func (s *LedgerServiceImpl) GetSummary(ctx context.Context, id uuid.UUID) ([]domain.SummaryEntry[domain.Currency], error) {
	if s.cache != nil {
		payload, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("account_id", id.String()).Msg("summary cache read failed, falling through to store")
		}
		if payload != nil {
			var entries []domain.SummaryEntry[domain.Currency]
			if err := json.Unmarshal(payload, &entries); err == nil {
				return entries, nil
			}
			s.log.Warn().Str("account_id", id.String()).Msg("corrupt summary cache payload, falling through to store")
		}
	}

	var entries []domain.SummaryEntry[domain.Currency]
	err := s.store.View(ctx, id, func(a *ports.LedgerAccount) error {
		entries = a.Summary()
		return nil
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}

	if s.cache != nil {
		payload, err := json.Marshal(entries)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal summary: %w", err))
		}
		if err := s.cache.Set(ctx, id, payload, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("account_id", id.String()).Msg("summary cache write failed")
		}
	}
	return entries, nil
}

// invalidateSummary drops the cached summary after a mutation. Best-effort:
// a cache failure is logged, never surfaced, since the store remains the
// source of truth and the entry expires by TTL anyway.
func (s *LedgerServiceImpl) invalidateSummary(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("account_id", id.String()).Msg("summary cache invalidation failed")
	}
}

// mapLedgerError converts core and store errors into transport-level
// apperror values.
func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ports.ErrAccountNotFound):
		return apperror.ErrNotFound("Account")
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return apperror.ErrNotFound("Currency")
	case errors.Is(err, domain.ErrNotAuthorized):
		return apperror.ErrCurrencyNotAuthorized()
	case errors.Is(err, domain.ErrCapacityExceeded):
		return apperror.ErrCapacityExceeded()
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, domain.ErrOverflow):
		return apperror.ErrBalanceOverflow()
	case errors.Is(err, domain.ErrAccountNotEmpty):
		return apperror.ErrAccountNotEmpty()
	default:
		return apperror.InternalError(err)
	}
}
