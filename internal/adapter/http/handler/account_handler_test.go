package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"currency-ledger/internal/adapter/http/dto"
	"currency-ledger/internal/core/domain"
	"currency-ledger/internal/core/ports"
	"currency-ledger/internal/core/ports/mocks"
	"currency-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response should carry a data object: %s", w.Body.String())
	return data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Create / Destroy ---

func TestCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().CreateAccount(gomock.Any()).Return(accountID, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts", nil)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, accountID.String(), data["account_id"])
}

func TestDestroy_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().DestroyAccount(gomock.Any(), accountID).Return(nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/accounts/"+accountID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Destroy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["destroyed"])
}

func TestDestroy_NonEmptyAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().DestroyAccount(gomock.Any(), accountID).Return(apperror.ErrAccountNotEmpty())

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/accounts/"+accountID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Destroy(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LED_007", decodeErrorCode(t, w))
}

func TestDestroy_InvalidAccountID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/accounts/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	h.Destroy(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LED_002", decodeErrorCode(t, w))
}

// --- Authorize ---

func TestAuthorizeCurrency_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		AuthorizeCurrency(gomock.Any(), accountID, domain.Currency("USD")).
		Return(nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/currencies",
		dto.AuthorizeCurrencyRequest{Currency: "USD"})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.AuthorizeCurrency(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "USD", data["currency"])
}

func TestAuthorizeCurrency_MissingCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/currencies",
		map[string]string{})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.AuthorizeCurrency(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LED_002", decodeErrorCode(t, w))
}

func TestAuthorizeCurrency_CapacityExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		AuthorizeCurrency(gomock.Any(), accountID, domain.Currency("XPF")).
		Return(apperror.ErrCapacityExceeded())

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/currencies",
		dto.AuthorizeCurrencyRequest{Currency: "XPF"})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.AuthorizeCurrency(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "LED_005", decodeErrorCode(t, w))
}

// --- Deposit ---

func TestDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		Deposit(gomock.Any(), accountID, domain.Currency("USD"), uint64(100)).
		Return(nil)
	mockSvc.EXPECT().
		GetBalance(gomock.Any(), accountID, domain.Currency("USD")).
		Return(&ports.BalanceView{Currency: "USD", Value: 100, Held: true}, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/deposits",
		dto.DepositRequest{Currency: "USD", Amount: 100})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Deposit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(100), data["value"])
	assert.Equal(t, true, data["held"])
}

func TestDeposit_NotAuthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		Deposit(gomock.Any(), accountID, domain.Currency("EUR"), uint64(50)).
		Return(apperror.ErrCurrencyNotAuthorized())

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/deposits",
		dto.DepositRequest{Currency: "EUR", Amount: 50})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Deposit(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "LED_003", decodeErrorCode(t, w))
}

func TestDeposit_ZeroAmountRejectedByBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/deposits",
		map[string]interface{}{"currency": "USD", "amount": 0})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Deposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LED_002", decodeErrorCode(t, w))
}

// --- Withdraw ---

func TestWithdraw_Amount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		Withdraw(gomock.Any(), accountID, domain.Currency("USD"), uint64(40)).
		Return(&ports.WithdrawnBalance{Currency: "USD", Amount: 40}, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdrawals",
		dto.WithdrawRequest{Currency: "USD", Amount: 40})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Withdraw(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(40), data["amount"])
}

func TestWithdraw_All(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		WithdrawAll(gomock.Any(), accountID, domain.Currency("USD")).
		Return(&ports.WithdrawnBalance{Currency: "USD", Amount: 60}, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdrawals",
		dto.WithdrawRequest{Currency: "USD", All: true})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Withdraw(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(60), data["amount"])
}

func TestWithdraw_AmountAndAllAreExclusive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdrawals",
		dto.WithdrawRequest{Currency: "USD", Amount: 40, All: true})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Withdraw(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LED_002", decodeErrorCode(t, w))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		Withdraw(gomock.Any(), accountID, domain.Currency("USD"), uint64(500)).
		Return(nil, apperror.ErrInsufficientFunds())

	c, w := newTestContext(t, http.MethodPost, "/api/v1/accounts/"+accountID.String()+"/withdrawals",
		dto.WithdrawRequest{Currency: "USD", Amount: 500})
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.Withdraw(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "LED_001", decodeErrorCode(t, w))
}

// --- Close ---

func TestCloseBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		CloseBalance(gomock.Any(), accountID, domain.Currency("USD")).
		Return(&ports.WithdrawnBalance{Currency: "USD", Amount: 0}, nil)

	c, w := newTestContext(t, http.MethodPost,
		"/api/v1/accounts/"+accountID.String()+"/currencies/USD/close", nil)
	c.Params = gin.Params{
		{Key: "id", Value: accountID.String()},
		{Key: "currency", Value: "USD"},
	}
	h.CloseBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(0), data["amount"])
}

func TestCloseBalance_CurrencyNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		CloseBalance(gomock.Any(), accountID, domain.Currency("JPY")).
		Return(nil, apperror.ErrNotFound("Currency"))

	c, w := newTestContext(t, http.MethodPost,
		"/api/v1/accounts/"+accountID.String()+"/currencies/JPY/close", nil)
	c.Params = gin.Params{
		{Key: "id", Value: accountID.String()},
		{Key: "currency", Value: "JPY"},
	}
	h.CloseBalance(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LED_004", decodeErrorCode(t, w))
}

// --- Reads ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		GetBalance(gomock.Any(), accountID, domain.Currency("USD")).
		Return(&ports.BalanceView{Currency: "USD", Value: 60, Held: true}, nil)

	c, w := newTestContext(t, http.MethodGet,
		"/api/v1/accounts/"+accountID.String()+"/currencies/USD", nil)
	c.Params = gin.Params{
		{Key: "id", Value: accountID.String()},
		{Key: "currency", Value: "USD"},
	}
	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(60), data["value"])
	assert.Equal(t, true, data["held"])
}

func TestGetBalance_AbsentCurrencyReportsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		GetBalance(gomock.Any(), accountID, domain.Currency("CHF")).
		Return(&ports.BalanceView{Currency: "CHF", Value: 0, Held: false}, nil)

	c, w := newTestContext(t, http.MethodGet,
		"/api/v1/accounts/"+accountID.String()+"/currencies/CHF", nil)
	c.Params = gin.Params{
		{Key: "id", Value: accountID.String()},
		{Key: "currency", Value: "CHF"},
	}
	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(0), data["value"])
	assert.Equal(t, false, data["held"])
}

func TestGetSummary_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		GetSummary(gomock.Any(), accountID).
		Return([]domain.SummaryEntry[domain.Currency]{
			{Currency: "USD", Value: 60},
			{Currency: "EUR", Value: 0},
		}, nil)

	c, w := newTestContext(t, http.MethodGet,
		"/api/v1/accounts/"+accountID.String()+"/summary", nil)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, accountID.String(), data["account_id"])

	holdings, ok := data["holdings"].([]interface{})
	require.True(t, ok)
	require.Len(t, holdings, 2)

	first := holdings[0].(map[string]interface{})
	assert.Equal(t, "USD", first["currency"])
	assert.Equal(t, float64(60), first["value"])
}

func TestGetSummary_AccountNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewAccountHandler(mockSvc)

	accountID := uuid.New()
	mockSvc.EXPECT().
		GetSummary(gomock.Any(), accountID).
		Return(nil, apperror.ErrNotFound("Account"))

	c, w := newTestContext(t, http.MethodGet,
		"/api/v1/accounts/"+accountID.String()+"/summary", nil)
	c.Params = gin.Params{{Key: "id", Value: accountID.String()}}
	h.GetSummary(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LED_004", decodeErrorCode(t, w))
}
