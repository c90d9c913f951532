package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/cafe-pos/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// linesInOrder keeps preloaded order lines in insertion order so bills
// render the same line sequence every time.
func linesInOrder(db *gorm.DB) *gorm.DB { return db.Order("id") }

// OrderLineRequest is one (item, quantity) pair of an order request.
// The caller never supplies a price; the engine re-resolves it against
// the live catalog at creation time.
type OrderLineRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerName  string             `json:"customer_name"`
	TableNumber   int                `json:"table_number"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []OrderLineRequest `json:"items"`
}

// BillingService creates orders and renders bills. Tax rates are flat
// percentages applied to the subtotal.
type BillingService struct {
	DB       *gorm.DB
	CafeName string
	CGSTRate decimal.Decimal
	SGSTRate decimal.Decimal
}

func NewBillingService(db *gorm.DB, cafeName string, cgstRate, sgstRate decimal.Decimal) *BillingService {
	return &BillingService{DB: db, CafeName: cafeName, CGSTRate: cgstRate, SGSTRate: sgstRate}
}

func (in CreateOrderInput) validate() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name is required", ErrInvalidInput)
	}
	if in.TableNumber <= 0 {
		return fmt.Errorf("%w: table_number must be positive", ErrInvalidInput)
	}
	switch in.PaymentMethod {
	case models.PaymentCash, models.PaymentCard, models.PaymentUPI:
	default:
		return fmt.Errorf("%w: unknown payment_method %q", ErrInvalidInput, in.PaymentMethod)
	}
	if len(in.Lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for item %d", ErrInvalidInput, l.ItemID)
		}
	}
	return nil
}

// CreateOrder resolves prices against the current catalog, computes the
// tax-inclusive totals and persists header plus lines as one
// transaction. Any unresolvable item aborts the whole order.
func (s *BillingService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		TableNumber:   in.TableNumber,
		Status:        models.OrderStatusCompleted,
		PaymentMethod: in.PaymentMethod,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		lines := make([]models.OrderLine, 0, len(in.Lines))
		for _, req := range in.Lines {
			var item models.MenuItem
			if err := tx.Where("id = ? AND available = ?", req.ItemID, true).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: item %d", ErrItemNotFound, req.ItemID)
				}
				return fmt.Errorf("resolve item %d: %w", req.ItemID, err)
			}
			itemID := item.ID
			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
			lines = append(lines, models.OrderLine{
				ItemID:    &itemID,
				ItemName:  item.Name,
				Quantity:  req.Quantity,
				UnitPrice: item.Price,
				LineTotal: lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		order.Subtotal = subtotal
		order.CGST = subtotal.Mul(s.CGSTRate).Div(oneHundred).Round(2)
		order.SGST = subtotal.Mul(s.SGSTRate).Div(oneHundred).Round(2)
		order.Total = order.Subtotal.Add(order.CGST).Add(order.SGST)
		order.Lines = lines

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder reconstructs a stored order with its lines. Lines carry the
// names and prices captured at creation, not the live catalog.
func (s *BillingService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Lines", linesInOrder).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}
