package dto

import "github.com/google/uuid"

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type CreateSaleRequest struct {
	Items         []SaleLineRequest `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	CustomerName  string            `json:"customerName,omitempty"`
}
