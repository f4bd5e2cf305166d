package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
)

func TestComputeSignature(t *testing.T) {
	t.Parallel()

	sig := ComputeSignature("ORDER-1", "200", "99000.00", "server-key")
	// sha512 hex digest is 128 characters.
	assert.Len(t, sig, 128)
	// Deterministic for the same inputs, different for any changed input.
	assert.Equal(t, sig, ComputeSignature("ORDER-1", "200", "99000.00", "server-key"))
	assert.NotEqual(t, sig, ComputeSignature("ORDER-2", "200", "99000.00", "server-key"))
	assert.NotEqual(t, sig, ComputeSignature("ORDER-1", "201", "99000.00", "server-key"))
	assert.NotEqual(t, sig, ComputeSignature("ORDER-1", "200", "99000.00", "other-key"))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	client := NewMidtransClient(&config.Config{MidtransServerKey: "server-key"})

	n := dto.MidtransNotification{
		OrderID:     "ORDER-1",
		StatusCode:  "200",
		GrossAmount: "99000.00",
	}
	n.SignatureKey = ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")
	assert.True(t, client.VerifySignature(&n))

	n.SignatureKey = "forged"
	assert.False(t, client.VerifySignature(&n))
}

func TestCreateSnapToken(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/snap/v1/transactions", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("Authorization"))

			var req snapRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ORDER-1", req.TransactionDetails.OrderID)
			assert.Equal(t, float64(99000), req.TransactionDetails.GrossAmount)
			assert.Equal(t, "buyer@example.com", req.CustomerDetails.Email)

			json.NewEncoder(w).Encode(SnapToken{Token: "tok-123", RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/redirection/tok-123"})
		}))
		defer server.Close()

		client := NewMidtransClient(&config.Config{
			MidtransServerKey: "server-key",
			MidtransAPIURL:    server.URL,
			AppBaseURL:        "http://localhost:3000",
		})

		token, err := client.CreateSnapToken("ORDER-1", 99000, CustomerDetails{FirstName: "Buyer", Email: "buyer@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "tok-123", token.Token)
		assert.NotEmpty(t, token.RedirectURL)
	})

	t.Run("gateway error surfaces first message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(snapErrorResponse{ErrorMessages: []string{"Access denied due to unauthorized transaction"}})
		}))
		defer server.Close()

		client := NewMidtransClient(&config.Config{MidtransAPIURL: server.URL})
		_, err := client.CreateSnapToken("ORDER-1", 99000, CustomerDetails{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Access denied")
	})
}

func TestGetTransactionStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/ORDER-1/status", r.URL.Path)
		json.NewEncoder(w).Encode(TransactionStatus{
			OrderID:           "ORDER-1",
			TransactionID:     "tx-9",
			TransactionStatus: "settlement",
			PaymentType:       "qris",
		})
	}))
	defer server.Close()

	client := NewMidtransClient(&config.Config{MidtransAPIURL: server.URL})
	status, err := client.GetTransactionStatus("ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
	assert.Equal(t, "tx-9", status.TransactionID)
}
