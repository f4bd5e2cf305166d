package dto

type DailySales struct {
	Date    string  `json:"date"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type TopProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type DashboardResponse struct {
	TotalSales        int64        `json:"totalSales"`
	TotalRevenue      float64      `json:"totalRevenue"`
	TotalProducts     int64        `json:"totalProducts"`
	AverageOrderValue float64      `json:"averageOrderValue"`
	SalesByDay        []DailySales `json:"salesByDay"`
	TopProducts       []TopProduct `json:"topProducts"`
}

type SalesStatsResponse struct {
	TimeRange    string       `json:"timeRange"`
	TotalSales   int64        `json:"totalSales"`
	TotalRevenue float64      `json:"totalRevenue"`
	SalesByDay   []DailySales `json:"salesByDay"`
}

type InventorySummaryResponse struct {
	TotalProducts       int64   `json:"totalProducts"`
	LowStockProducts    int64   `json:"lowStockProducts"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
}
