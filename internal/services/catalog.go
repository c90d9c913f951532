package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/cafe-pos/internal/models"
)

// CatalogService reads the menu master data. Order creation looks
// prices up here; nothing in this package ever writes to the catalog.
type CatalogService struct{ DB *gorm.DB }

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{DB: db} }

// ListAvailableItems returns the items currently offered on the menu.
func (s *CatalogService) ListAvailableItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.DB.Where("available = ?", true).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// GetItemByID returns a single catalog entry, available or not.
func (s *CatalogService) GetItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrItemNotFound, id)
		}
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return &item, nil
}
