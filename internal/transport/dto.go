package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ItemRequest struct {
	Name               string  `json:"name"`
	QuickCode          string  `json:"quick_code"`
	Price              float64 `json:"price"`
	Unit               string  `json:"unit"`
	IsDiscountEligible bool    `json:"is_discount_eligible"`
	ImageURL           string  `json:"image_url"`
}

type CreateItemResponse struct {
	ItemID uint `json:"item_id"`
}

type CustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type CartLine struct {
	ID       uint    `json:"id"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	Cart               []CartLine `json:"cart"`
	DiscountPercentage float64    `json:"discountPercentage"`
	CustomerID         *uint      `json:"customer_id"`
}

type CreateOrderResponse struct {
	OrderID uint `json:"order_id"`
}

type OrderLineDetail struct {
	ID           uint            `json:"id"`
	ItemID       *uint           `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Quantity     float64         `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type ReportSummary struct {
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalOrders        int64           `json:"total_orders"`
	TotalDiscountGiven decimal.Decimal `json:"total_discount_given"`
}

type SalesByItem struct {
	ItemID               uint            `json:"item_id"`
	ItemName             string          `json:"item_name"`
	TotalQuantitySold    float64         `json:"total_quantity_sold"`
	TotalRevenueFromItem decimal.Decimal `json:"total_revenue_from_item"`
}

type SalesReport struct {
	Summary     ReportSummary `json:"summary"`
	SalesByItem []SalesByItem `json:"sales_by_item"`
}

type CustomerReportRow struct {
	CustomerID  uint            `json:"customer_id"`
	Name        string          `json:"name"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type OrderDetailRow struct {
	OrderID      uint            `json:"order_id"`
	CreatedAt    time.Time       `json:"created_at"`
	FinalTotal   decimal.Decimal `json:"final_total"`
	CustomerName *string         `json:"customer_name"`
}
