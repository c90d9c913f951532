package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is the catalog master data. Orders never mutate it; order
// lines capture name and price at creation time instead of referencing
// the live row for billing.
type MenuItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;unique" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category  string          `json:"category"`
	// No default tag here: gorm skips zero-valued fields that carry a
	// default, which would silently turn Available=false into true.
	Available bool            `gorm:"not null" json:"available"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
