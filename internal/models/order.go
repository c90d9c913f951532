package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orders are written once and never updated in place; corrections are
// new orders.
const (
	OrderStatusCompleted = "completed"
)

// Payment methods accepted at the till.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerName  string          `gorm:"not null;index" json:"customer_name"`
	TableNumber   int             `gorm:"not null" json:"table_number"`
	Status        string          `gorm:"not null;default:'completed'" json:"status"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CGST          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cgst"`
	SGST          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sgst"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderLine is one (item, quantity) entry of an order. ItemID is
// nullable so that deleting a catalog entry leaves historical bills
// intact (the captured name and price stay on the line).
type OrderLine struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uint            `gorm:"not null;index" json:"-"`
	ItemID    *uint           `gorm:"index" json:"item_id"`
	Item      *MenuItem       `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL" json:"-"`
	ItemName  string          `gorm:"not null" json:"item_name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
}
