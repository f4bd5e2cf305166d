package services

import (
	"bytes"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
)

// MidtransClient talks to the Midtrans Snap API: checkout token creation,
// transaction status polling and webhook signature verification.
type MidtransClient struct {
	serverKey  string
	apiURL     string
	baseURL    string
	httpClient *http.Client
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type snapTransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type snapCallbacks struct {
	Finish  string `json:"finish"`
	Error   string `json:"error"`
	Pending string `json:"pending"`
}

type snapRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CreditCard         map[string]bool        `json:"credit_card"`
	CustomerDetails    CustomerDetails        `json:"customer_details"`
	Callbacks          snapCallbacks          `json:"callbacks"`
}

type SnapToken struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type snapErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}

// TransactionStatus is the subset of the Midtrans status response the
// reconciliation path needs.
type TransactionStatus struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}

func NewMidtransClient(cfg *config.Config) *MidtransClient {
	return &MidtransClient{
		serverKey:  cfg.MidtransServerKey,
		apiURL:     cfg.MidtransAPIURL,
		baseURL:    cfg.AppBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSnapToken requests a hosted checkout token for the given order.
func (m *MidtransClient) CreateSnapToken(orderID string, amount float64, customer CustomerDetails) (*SnapToken, error) {
	payload := snapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     orderID,
			GrossAmount: amount,
		},
		CreditCard:      map[string]bool{"secure": true},
		CustomerDetails: customer,
		Callbacks: snapCallbacks{
			Finish:  m.baseURL + "/subscription/success",
			Error:   m.baseURL + "/subscription/error",
			Pending: m.baseURL + "/subscription/pending",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snap request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.apiURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+m.basicAuth())

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snap token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr snapErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && len(apiErr.ErrorMessages) > 0 {
			return nil, fmt.Errorf("midtrans error: %s", apiErr.ErrorMessages[0])
		}
		return nil, fmt.Errorf("midtrans returned status %d", resp.StatusCode)
	}

	var token SnapToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode snap response: %w", err)
	}
	return &token, nil
}

// GetTransactionStatus polls the gateway for an order's current status.
func (m *MidtransClient) GetTransactionStatus(orderID string) (*TransactionStatus, error) {
	req, err := http.NewRequest(http.MethodGet, m.apiURL+"/v2/"+orderID+"/status", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+m.basicAuth())

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transaction status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("midtrans returned status %d", resp.StatusCode)
	}

	var status TransactionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &status, nil
}

// VerifySignature checks the webhook authenticity token:
// sha512(order_id + status_code + gross_amount + server_key).
func (m *MidtransClient) VerifySignature(n *dto.MidtransNotification) bool {
	expected := ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, m.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}

func ComputeSignature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func (m *MidtransClient) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(m.serverKey + ":"))
}
