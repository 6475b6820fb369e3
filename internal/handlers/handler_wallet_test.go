package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jess232017/wallet-service/internal/core/services"
	"github.com/jess232017/wallet-service/internal/dto"
	"github.com/jess232017/wallet-service/internal/repositories/database/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerCustomValidations()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	container := services.NewServiceContainer(repos, nil)

	r := gin.New()
	v1 := r.Group("/api/v1")
	registerWalletRoutes(v1, container.Wallet, container.Ledger)
	registerTransactionRoutes(v1, container.Ledger)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestWallet(t *testing.T, r *gin.Engine, name string) dto.WalletResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.WalletResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateWalletEndpoint(t *testing.T) {
	r := newTestRouter()

	wallet := createTestWallet(t, r, "Checking")
	require.NotEmpty(t, wallet.WalletID)
	require.Equal(t, "Checking", wallet.Name)
	require.True(t, wallet.Balance.IsZero())
	require.Equal(t, int64(1), wallet.Version)
}

func TestCreateWalletEndpoint_MissingName(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWalletEndpoint_NotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/wallets/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepositAndBalanceEndpoints(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Savings")

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/deposit", gin.H{
		"amount":      "150.00",
		"description": "Paycheck",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var txn dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txn))
	require.Equal(t, wallet.WalletID, txn.WalletID)
	require.True(t, txn.Amount.Equal(decimal.RequireFromString("150.00")))

	w = doJSON(t, r, http.MethodGet, "/api/v1/wallets/"+wallet.WalletID+"/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var balance dto.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	require.True(t, balance.Balance.Equal(decimal.RequireFromString("150.00")))
}

func TestWithdrawEndpoint_InsufficientFunds(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Tight Budget")

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/deposit", gin.H{"amount": "20.00"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/withdraw", gin.H{"amount": "20.01"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Balance untouched by the failed withdrawal.
	w = doJSON(t, r, http.MethodGet, "/api/v1/wallets/"+wallet.WalletID+"/balance", nil)
	var balance dto.BalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	require.True(t, balance.Balance.Equal(decimal.RequireFromString("20.00")))
}

func TestDepositEndpoint_NegativeAmountRejected(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Strict")

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/deposit", gin.H{"amount": "-5.00"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositEndpoint_WalletNotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/missing/deposit", gin.H{"amount": "5.00"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsEndpoint(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "History")

	for _, amount := range []string{"10.00", "25.00"} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/deposit", gin.H{"amount": amount})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/wallets/"+wallet.WalletID+"/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var txns []dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	require.Len(t, txns, 2)
}

func TestGetTransactionEndpoint(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Lookup")

	w := doJSON(t, r, http.MethodPost, "/api/v1/wallets/"+wallet.WalletID+"/deposit", gin.H{"amount": "42.00"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, "/api/v1/transactions/"+created.TransactionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, created.TransactionID, fetched.TransactionID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/transactions/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateWalletEndpoint_Rename(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Before")

	w := doJSON(t, r, http.MethodPut, "/api/v1/wallets/"+wallet.WalletID, gin.H{"name": "After"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.WalletResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "After", updated.Name)
	require.Equal(t, wallet.Version+1, updated.Version)
}

func TestDeleteWalletEndpoint(t *testing.T) {
	r := newTestRouter()
	wallet := createTestWallet(t, r, "Ephemeral")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/wallets/"+wallet.WalletID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/wallets/"+wallet.WalletID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
