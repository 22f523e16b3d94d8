package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name               string          `gorm:"not null"                    json:"name"`
	QuickCode          string          `gorm:"index"                       json:"quick_code"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Unit               string          `json:"unit"`
	IsDiscountEligible bool            `json:"is_discount_eligible"`
	ImageURL           string          `json:"image_url"`
}

type Customer struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;index"           json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// Order is the financial record of one sale. Totals are set once at creation
// and never updated; CustomerID is a weak reference that may be nulled later.
type Order struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CreatedAt          time.Time       `gorm:"index;not null"              json:"created_at"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DiscountPercentage float64         `gorm:"not null"                    json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	FinalTotal         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_total"`
	CustomerID         *uint           `gorm:"index"                       json:"customer_id"`
}

// OrderItem captures price_per_unit at sale time; it never re-reads the
// catalog. ItemID is a weak reference nulled when the item is deleted.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID      uint            `gorm:"index;not null"              json:"order_id"`
	ItemID       *uint           `gorm:"index"                       json:"item_id"`
	Quantity     float64         `gorm:"not null;check:quantity>0"   json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_unit"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}
