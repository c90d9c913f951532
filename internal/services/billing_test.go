package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/cafe-pos/internal/models"
)

func setupBillingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seed Tea (10.00) and Coffee (20.00) plus one unavailable item
func seedMenuFixtures(t *testing.T, db *gorm.DB) (tea, coffee models.MenuItem) {
	t.Helper()
	tea = models.MenuItem{Name: "Tea", Price: decimal.RequireFromString("10.00"), Category: "Beverages", Available: true}
	if err := db.Create(&tea).Error; err != nil {
		t.Fatalf("tea: %v", err)
	}
	coffee = models.MenuItem{Name: "Coffee", Price: decimal.RequireFromString("20.00"), Category: "Beverages", Available: true}
	if err := db.Create(&coffee).Error; err != nil {
		t.Fatalf("coffee: %v", err)
	}
	offMenu := models.MenuItem{Name: "Seasonal Special", Price: decimal.RequireFromString("60.00"), Category: "Beverages", Available: false}
	if err := db.Create(&offMenu).Error; err != nil {
		t.Fatalf("off-menu item: %v", err)
	}
	return tea, coffee
}

func newTestBilling(db *gorm.DB) *BillingService {
	return NewBillingService(db, "CHAICOFFEE.COM", decimal.NewFromInt(9), decimal.NewFromInt(9))
}

func TestCreateOrderTotals(t *testing.T) {
	db := setupBillingTestDB(t)
	tea, coffee := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Asha",
		TableNumber:   4,
		PaymentMethod: models.PaymentCash,
		Lines: []OrderLineRequest{
			{ItemID: tea.ID, Quantity: 2},
			{ItemID: coffee.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected assigned order id")
	}
	if got := order.Subtotal.StringFixed(2); got != "40.00" {
		t.Errorf("subtotal = %s, want 40.00", got)
	}
	if got := order.CGST.StringFixed(2); got != "3.60" {
		t.Errorf("cgst = %s, want 3.60", got)
	}
	if !order.CGST.Equal(order.SGST) {
		t.Errorf("equal rates must yield equal tax amounts: cgst=%s sgst=%s", order.CGST, order.SGST)
	}
	if got := order.Total.StringFixed(2); got != "47.20" {
		t.Errorf("total = %s, want 47.20", got)
	}
	want := order.Subtotal.Add(order.CGST).Add(order.SGST)
	if !order.Total.Equal(want) {
		t.Errorf("total %s != subtotal+cgst+sgst %s", order.Total, want)
	}
}

func TestCreateOrderUnknownItemIsAtomic(t *testing.T) {
	db := setupBillingTestDB(t)
	tea, _ := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	_, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Asha",
		TableNumber:   4,
		PaymentMethod: models.PaymentCard,
		Lines: []OrderLineRequest{
			{ItemID: tea.ID, Quantity: 1},
			{ItemID: 9999, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound got %v", err)
	}
	var orders, lines int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderLine{}).Count(&lines)
	if orders != 0 || lines != 0 {
		t.Fatalf("partial write after failed order: orders=%d lines=%d", orders, lines)
	}
}

func TestCreateOrderUnavailableItem(t *testing.T) {
	db := setupBillingTestDB(t)
	seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	var offMenu models.MenuItem
	if err := db.Where("available = ?", false).First(&offMenu).Error; err != nil {
		t.Fatalf("fixture: %v", err)
	}
	_, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Ravi",
		TableNumber:   1,
		PaymentMethod: models.PaymentCash,
		Lines:         []OrderLineRequest{{ItemID: offMenu.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for unavailable item got %v", err)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupBillingTestDB(t)
	tea, _ := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	valid := CreateOrderInput{
		CustomerName:  "Asha",
		TableNumber:   2,
		PaymentMethod: models.PaymentCash,
		Lines:         []OrderLineRequest{{ItemID: tea.ID, Quantity: 1}},
	}

	tests := []struct {
		name    string
		mutate  func(*CreateOrderInput)
		wantErr error
	}{
		{"empty customer", func(in *CreateOrderInput) { in.CustomerName = "  " }, ErrInvalidInput},
		{"zero table", func(in *CreateOrderInput) { in.TableNumber = 0 }, ErrInvalidInput},
		{"bad payment method", func(in *CreateOrderInput) { in.PaymentMethod = "cheque" }, ErrInvalidInput},
		{"no lines", func(in *CreateOrderInput) { in.Lines = nil }, ErrEmptyOrder},
		{"zero quantity", func(in *CreateOrderInput) { in.Lines[0].Quantity = 0 }, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Lines = append([]OrderLineRequest(nil), valid.Lines...)
			tt.mutate(&in)
			if _, err := svc.CreateOrder(in); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("rejected inputs must not persist orders, found %d", orders)
	}
}

func TestOrderRoundTripSurvivesPriceChange(t *testing.T) {
	db := setupBillingTestDB(t)
	tea, _ := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	created, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Meera",
		TableNumber:   7,
		PaymentMethod: models.PaymentUPI,
		Lines:         []OrderLineRequest{{ItemID: tea.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// Catalog price change after the fact must not touch the stored bill.
	if err := db.Model(&models.MenuItem{}).Where("id = ?", tea.ID).
		Update("price", decimal.RequireFromString("99.00")).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	got, err := svc.GetOrder(created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected 1 line got %d", len(got.Lines))
	}
	line := got.Lines[0]
	if line.ItemName != "Tea" || line.Quantity != 3 {
		t.Errorf("line = %s x%d, want Tea x3", line.ItemName, line.Quantity)
	}
	if got := line.UnitPrice.StringFixed(2); got != "10.00" {
		t.Errorf("captured unit price = %s, want 10.00", got)
	}
	if !got.Subtotal.Equal(created.Subtotal) || !got.Total.Equal(created.Total) {
		t.Errorf("stored totals changed on read back: %s/%s vs %s/%s",
			got.Subtotal, got.Total, created.Subtotal, created.Total)
	}
}

func TestDeletedCatalogItemKeepsHistoricalLines(t *testing.T) {
	// SQLite only enforces foreign keys when asked; the production
	// schema relies on ON DELETE SET NULL for order_lines.item_id.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	tea, _ := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	created, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Asha",
		TableNumber:   2,
		PaymentMethod: models.PaymentCash,
		Lines:         []OrderLineRequest{{ItemID: tea.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := db.Delete(&models.MenuItem{}, tea.ID).Error; err != nil {
		t.Fatalf("delete catalog item: %v", err)
	}

	got, err := svc.GetOrder(created.ID)
	if err != nil {
		t.Fatalf("get order after catalog delete: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected 1 line got %d", len(got.Lines))
	}
	line := got.Lines[0]
	if line.ItemID != nil {
		t.Errorf("item_id = %d, want NULL after catalog delete", *line.ItemID)
	}
	if line.ItemName != "Tea" {
		t.Errorf("captured name = %q, want Tea", line.ItemName)
	}
	if gotPrice := line.UnitPrice.StringFixed(2); gotPrice != "10.00" {
		t.Errorf("captured unit price = %s, want 10.00", gotPrice)
	}
	if !got.Total.Equal(created.Total) {
		t.Errorf("stored total changed after catalog delete: %s vs %s", got.Total, created.Total)
	}

	bill, err := svc.RenderBill(got)
	if err != nil {
		t.Fatalf("render bill: %v", err)
	}
	if !strings.Contains(bill, "- Tea x2 @ 10.00 = 20.00") {
		t.Errorf("bill lost its line after catalog delete:\n%s", bill)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := newTestBilling(db)
	if _, err := svc.GetOrder(12345); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound got %v", err)
	}
}

func TestRenderBillMatchesStoredTotals(t *testing.T) {
	db := setupBillingTestDB(t)
	tea, coffee := seedMenuFixtures(t, db)
	svc := newTestBilling(db)

	created, err := svc.CreateOrder(CreateOrderInput{
		CustomerName:  "Asha",
		TableNumber:   4,
		PaymentMethod: models.PaymentCash,
		Lines: []OrderLineRequest{
			{ItemID: tea.ID, Quantity: 2},
			{ItemID: coffee.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	order, err := svc.GetOrder(created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}

	// Recompute from the lines; any mismatch with stored totals is a
	// data-integrity bug.
	recomputed := decimal.Zero
	for _, l := range order.Lines {
		recomputed = recomputed.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if !recomputed.Equal(order.Subtotal) {
		t.Fatalf("recomputed subtotal %s != stored %s", recomputed, order.Subtotal)
	}

	// Lines come back in insertion order so the bill layout is stable.
	if order.Lines[0].ItemName != "Tea" || order.Lines[1].ItemName != "Coffee" {
		t.Fatalf("lines out of order: %s, %s", order.Lines[0].ItemName, order.Lines[1].ItemName)
	}

	bill, err := svc.RenderBill(order)
	if err != nil {
		t.Fatalf("render bill: %v", err)
	}
	for _, want := range []string{
		"-------- CHAICOFFEE.COM --------",
		"Customer Name: Asha",
		"Table Number: 4",
		"Payment Method: cash",
		"- Tea x2 @ 10.00 = 20.00",
		"- Coffee x1 @ 20.00 = 20.00",
		"Subtotal (before GST): 40.00",
		"CGST @ 9%: 3.60",
		"SGST @ 9%: 3.60",
		"Total Amount (including GST): 47.20",
	} {
		if !strings.Contains(bill, want) {
			t.Errorf("bill missing %q:\n%s", want, bill)
		}
	}

	// Rendering must be deterministic.
	again, err := svc.RenderBill(order)
	if err != nil {
		t.Fatalf("render bill again: %v", err)
	}
	if bill != again {
		t.Fatalf("bill rendering not deterministic")
	}
}
