package dto

type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	SKU           string   `json:"sku,omitempty"`
	Barcode       string   `json:"barcode,omitempty"`
	Stock         *int     `json:"stock"`
	MinStockLevel int      `json:"minStockLevel"`
	CostPrice     *float64 `json:"costPrice,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

type StockAdjustmentRequest struct {
	ChangeAmount int    `json:"changeAmount"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes,omitempty"`
}
