package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/cafe-pos/internal/models"
)

// ConnectAndMigrate opens the database selected by DATABASE_DSN, brings
// the schema up to date and optionally seeds the menu (DB_SEED=1).
// SQLite DSNs (file:, :memory:, *.db) get the sqlite driver, anything
// else goes to postgres.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		if IsSQLiteDSN(dsn) {
			db, err = gorm.Open(sqlite.Open(dsn), cfg)
		} else {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
		}
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	// MIGRATIONS=1 runs the SQL migrations via golang-migrate (postgres
	// only); otherwise AutoMigrate keeps dev and test schemas current.
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); (v == "1" || v == "true" || v == "yes") && !IsSQLiteDSN(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.MenuItem{}, &models.Order{}, &models.OrderLine{}} {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required tables exist
	for _, table := range []string{"menu_items", "orders", "order_lines"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		Seed(db)
	}
	return db, nil
}

// Seed inserts the baseline beverage menu if the items are missing.
// Safe to call repeatedly.
func Seed(db *gorm.DB) {
	baseMenu := []struct {
		name  string
		price string
	}{
		{"Tea", "10.00"},
		{"Coffee", "20.00"},
		{"Chocolate Coffee", "50.00"},
		{"Cold Coffee", "80.00"},
		{"Mocha", "80.00"},
		{"Latte", "90.00"},
		{"Espresso", "90.00"},
		{"Cold Coffee with Ice Cream", "100.00"},
		{"Cappuccino", "120.00"},
		{"Americano", "150.00"},
	}
	for _, m := range baseMenu {
		var existing models.MenuItem
		if err := db.Where("name = ?", m.name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			price, _ := decimal.NewFromString(m.price)
			db.Create(&models.MenuItem{Name: m.name, Price: price, Category: "Beverages", Available: true})
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
