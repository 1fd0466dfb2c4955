package dto

// AuthorizeCurrencyRequest is the request body for authorizing a currency.
type AuthorizeCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,min=1,max=64"`
}

// DepositRequest is the request body for a deposit.
type DepositRequest struct {
	Currency string `json:"currency" binding:"required,min=1,max=64"`
	Amount   uint64 `json:"amount" binding:"required,gt=0"`
}

// WithdrawRequest is the request body for a withdrawal. Either Amount is a
// positive value (partial withdrawal) or All is true (withdraw the entire
// balance); the handler rejects any other combination.
type WithdrawRequest struct {
	Currency string `json:"currency" binding:"required,min=1,max=64"`
	Amount   uint64 `json:"amount"`
	All      bool   `json:"all"`
}

// CreateAccountResponse is the response body for account creation.
type CreateAccountResponse struct {
	AccountID string `json:"account_id"`
}

// AuthorizeCurrencyResponse echoes the authorized currency.
type AuthorizeCurrencyResponse struct {
	Currency string `json:"currency"`
}

// BalanceResponse is the response for the non-failing balance read. Held
// distinguishes a live zero-valued entry from a currency with no entry.
type BalanceResponse struct {
	Currency string `json:"currency"`
	Value    uint64 `json:"value"`
	Held     bool   `json:"held"`
}

// WithdrawnBalanceResponse is the response for withdraw and close: the
// balance removed from the account.
type WithdrawnBalanceResponse struct {
	Currency string `json:"currency"`
	Amount   uint64 `json:"amount"`
}

// SummaryEntryResponse is one currency's holding in the summary view.
type SummaryEntryResponse struct {
	Currency string `json:"currency"`
	Value    uint64 `json:"value"`
}

// SummaryResponse is the ordered holdings view of an account.
type SummaryResponse struct {
	AccountID string                 `json:"account_id"`
	Holdings  []SummaryEntryResponse `json:"holdings"`
}
