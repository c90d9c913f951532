package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/cafe-pos/internal/models"
)

// ReportingService aggregates over the order ledger. All methods are
// read-only and idempotent; days without orders report zeroes.
type ReportingService struct{ DB *gorm.DB }

func NewReportingService(db *gorm.DB) *ReportingService { return &ReportingService{DB: db} }

type DailySales struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"order_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	Total      decimal.Decimal `json:"total"`
}

// DailySalesReport sums orders created on the given calendar day, in
// that day's location.
func (s *ReportingService) DailySalesReport(day time.Time) (DailySales, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rep := DailySales{
		Date:     start.Format("2006-01-02"),
		Subtotal: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero, Total: decimal.Zero,
	}
	row := s.DB.Model(&models.Order{}).
		Select("COUNT(id), COALESCE(SUM(subtotal), 0), COALESCE(SUM(cgst), 0), COALESCE(SUM(sgst), 0), COALESCE(SUM(total), 0)").
		Where("created_at >= ? AND created_at < ?", start, end).
		Row()
	if err := row.Scan(&rep.OrderCount, &rep.Subtotal, &rep.CGST, &rep.SGST, &rep.Total); err != nil {
		return DailySales{}, fmt.Errorf("daily sales for %s: %w", rep.Date, err)
	}
	// SQLite sums decimals as floats; normalize back to 2 places.
	rep.Subtotal = rep.Subtotal.Round(2)
	rep.CGST = rep.CGST.Round(2)
	rep.SGST = rep.SGST.Round(2)
	rep.Total = rep.Total.Round(2)
	return rep, nil
}

// SalesByDay reports one entry per calendar day with at least one order
// in the inclusive [from, to] range.
func (s *ReportingService) SalesByDay(from, to time.Time) ([]DailySales, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}
	var days []DailySales
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rep, err := s.DailySalesReport(d)
		if err != nil {
			return nil, err
		}
		if rep.OrderCount > 0 {
			days = append(days, rep)
		}
	}
	return days, nil
}

// CustomerHistory returns the customer's orders newest first, lines
// included. An unknown customer simply has an empty history.
func (s *ReportingService) CustomerHistory(customerName string) ([]models.Order, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	var orders []models.Order
	err := s.DB.Where("customer_name = ?", name).
		Order("created_at DESC, id DESC").
		Preload("Lines", linesInOrder).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("customer history for %q: %w", name, err)
	}
	return orders, nil
}
