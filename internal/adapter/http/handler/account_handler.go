package handler

import (
	"currency-ledger/internal/adapter/http/dto"
	"currency-ledger/internal/core/domain"
	"currency-ledger/internal/core/ports"
	"currency-ledger/pkg/apperror"
	"currency-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles account and balance endpoints.
type AccountHandler struct {
	ledgerSvc ports.LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerSvc ports.LedgerService) *AccountHandler {
	return &AccountHandler{ledgerSvc: ledgerSvc}
}

// Create handles POST /api/v1/accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	id, err := h.ledgerSvc.CreateAccount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CreateAccountResponse{AccountID: id.String()})
}

// Destroy handles DELETE /api/v1/accounts/:id.
func (h *AccountHandler) Destroy(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.ledgerSvc.DestroyAccount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"account_id": id.String(), "destroyed": true})
}

// AuthorizeCurrency handles POST /api/v1/accounts/:id/currencies.
func (h *AccountHandler) AuthorizeCurrency(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req dto.AuthorizeCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ledgerSvc.AuthorizeCurrency(c.Request.Context(), id, domain.Currency(req.Currency)); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AuthorizeCurrencyResponse{Currency: req.Currency})
}

// Deposit handles POST /api/v1/accounts/:id/deposits.
func (h *AccountHandler) Deposit(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ledgerSvc.Deposit(c.Request.Context(), id, domain.Currency(req.Currency), req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.ledgerSvc.GetBalance(c.Request.Context(), id, domain.Currency(req.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBalanceResponse(view))
}

// Withdraw handles POST /api/v1/accounts/:id/withdrawals. A request with
// "all": true withdraws the entire balance; otherwise "amount" must be
// positive.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var (
		out *ports.WithdrawnBalance
		err error
	)
	switch {
	case req.All && req.Amount != 0:
		response.Error(c, apperror.Validation("amount and all are mutually exclusive"))
		return
	case req.All:
		out, err = h.ledgerSvc.WithdrawAll(c.Request.Context(), id, domain.Currency(req.Currency))
	default:
		out, err = h.ledgerSvc.Withdraw(c.Request.Context(), id, domain.Currency(req.Currency), req.Amount)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawnResponse(out))
}

// CloseBalance handles POST /api/v1/accounts/:id/currencies/:currency/close.
func (h *AccountHandler) CloseBalance(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	currency := domain.Currency(c.Param("currency"))

	out, err := h.ledgerSvc.CloseBalance(c.Request.Context(), id, currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWithdrawnResponse(out))
}

// GetBalance handles GET /api/v1/accounts/:id/currencies/:currency.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	currency := domain.Currency(c.Param("currency"))

	view, err := h.ledgerSvc.GetBalance(c.Request.Context(), id, currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBalanceResponse(view))
}

// GetSummary handles GET /api/v1/accounts/:id/summary.
func (h *AccountHandler) GetSummary(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	entries, err := h.ledgerSvc.GetSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	holdings := make([]dto.SummaryEntryResponse, 0, len(entries))
	for _, e := range entries {
		holdings = append(holdings, dto.SummaryEntryResponse{
			Currency: e.Currency.String(),
			Value:    e.Value,
		})
	}

	response.OK(c, dto.SummaryResponse{AccountID: id.String(), Holdings: holdings})
}

// accountID parses the :id path parameter, writing a validation error on
// failure.
func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid account id"))
		return uuid.Nil, false
	}
	return id, true
}

func toBalanceResponse(v *ports.BalanceView) dto.BalanceResponse {
	return dto.BalanceResponse{
		Currency: v.Currency.String(),
		Value:    v.Value,
		Held:     v.Held,
	}
}

func toWithdrawnResponse(b *ports.WithdrawnBalance) dto.WithdrawnBalanceResponse {
	return dto.WithdrawnBalanceResponse{
		Currency: b.Currency.String(),
		Amount:   b.Amount,
	}
}
