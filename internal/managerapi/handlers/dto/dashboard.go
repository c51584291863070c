package dto

import "github.com/shopspring/decimal"

// DashboardResponse summarises sales over the requested window. Revenue is
// in the base currency.
type DashboardResponse struct {
	Days              int                  `json:"days"`
	Revenue           Money                `json:"revenue"`
	Orders            int64                `json:"orders"`
	PaidOrders        int64                `json:"paid_orders"`
	AverageOrderValue Money                `json:"average_order_value"`
	Customers         int64                `json:"customers"`
	OrdersByStatus    map[string]int64     `json:"orders_by_status"`
	TopProducts       []TopProductResponse `json:"top_products"`
	DailyRevenue      []DailyRevenuePoint  `json:"daily_revenue"`
}

type TopProductResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Units     int64           `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DailyRevenuePoint struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}
