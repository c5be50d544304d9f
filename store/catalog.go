package store

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-api/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a by-id lookup or update matches no row.
var ErrNotFound = errors.New("record not found")

// ErrStatusChanged is returned by a conditional status update whose expected
// current status no longer matches.
var ErrStatusChanged = errors.New("order status changed concurrently")

// Catalog holds the menu.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListAvailable returns the items customers can see.
func (c *Catalog) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := c.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id asc").
		Find(&items).Error
	return items, err
}

// ListAll returns every item including hidden ones.
func (c *Catalog) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	err := c.db.WithContext(ctx).Order("id asc").Find(&items).Error
	return items, err
}

// Get returns a single item by id.
func (c *Catalog) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := c.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the given items keyed by id. Missing ids are simply absent from the map.
func (c *Catalog) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	found := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var items []models.MenuItem
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// Create inserts item and fills in its id and timestamp.
func (c *Catalog) Create(ctx context.Context, item *models.MenuItem) error {
	return c.db.WithContext(ctx).Create(item).Error
}

// Replace overwrites every editable field of the item with the given id.
func (c *Catalog) Replace(ctx context.Context, id uint, item models.MenuItem) (*models.MenuItem, error) {
	result := c.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"description":  item.Description,
			"price":        item.Price,
			"category":     item.Category,
			"image_url":    item.ImageURL,
			"is_veg":       item.IsVeg,
			"is_available": item.IsAvailable,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("update menu item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return c.Get(ctx, id)
}

// Count returns the number of menu items.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&n).Error
	return n, err
}
