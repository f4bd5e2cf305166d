package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tokapos/tokapos-backend/internal/models"
)

func TestMapTransactionStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		transactionStatus string
		fraudStatus       string
		want              string
	}{
		{"capture", "accept", models.PaymentStatusSuccess},
		{"capture", "", models.PaymentStatusSuccess},
		{"capture", "challenge", models.PaymentStatusPending},
		{"settlement", "", models.PaymentStatusSuccess},
		{"settlement", "accept", models.PaymentStatusSuccess},
		{"deny", "", models.PaymentStatusFailed},
		{"cancel", "", models.PaymentStatusFailed},
		{"expire", "", models.PaymentStatusExpired},
		{"pending", "", models.PaymentStatusPending},
		{"refund", "", models.PaymentStatusPending},
		{"", "", models.PaymentStatusPending},
	}
	for _, tc := range cases {
		got := MapTransactionStatus(tc.transactionStatus, tc.fraudStatus)
		assert.Equal(t, tc.want, got, "transaction_status=%q fraud_status=%q", tc.transactionStatus, tc.fraudStatus)
	}
}

func TestSimplifyStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.PaymentStatusSuccess, simplifyStatus(models.PaymentStatusSuccess))
	assert.Equal(t, models.PaymentStatusFailed, simplifyStatus(models.PaymentStatusFailed))
	assert.Equal(t, models.PaymentStatusFailed, simplifyStatus(models.PaymentStatusExpired))
	assert.Equal(t, models.PaymentStatusPending, simplifyStatus(models.PaymentStatusPending))
	assert.Equal(t, models.PaymentStatusPending, simplifyStatus("unknown"))
}
