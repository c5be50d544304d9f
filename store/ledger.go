package store

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger holds orders and their lines.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Create writes the order and all of its lines in one transaction. Either every
// row becomes visible or none does.
func (l *Ledger) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
			return fmt.Errorf("insert order lines: %w", err)
		}
		order.Lines = lines
		return nil
	})
}

// Get returns the order header without its lines.
func (l *Ledger) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := l.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetWithLines returns the order with its lines in insertion order.
func (l *Ledger) GetWithLines(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := l.db.WithContext(ctx).
		Preload("Lines", orderLinesByID).
		Preload("Lines.MenuItem").
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus overwrites the order's status. Setting the current value again is allowed.
func (l *Ledger) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	result := l.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update order %s status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatusFrom sets the status only if it is still from. It returns
// ErrStatusChanged when the order exists but has moved on.
func (l *Ledger) SetStatusFrom(ctx context.Context, id string, from, to models.OrderStatus) error {
	result := l.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("update order %s status: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if _, err := l.Get(ctx, id); err != nil {
		return err
	}
	return ErrStatusChanged
}

// ListWithLines returns every order newest first, with lines and their menu items.
func (l *Ledger) ListWithLines(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := l.db.WithContext(ctx).
		Preload("Lines", orderLinesByID).
		Preload("Lines.MenuItem").
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// CountLines returns how many lines reference the order; used to check atomicity.
func (l *Ledger) CountLines(ctx context.Context, orderID string) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Model(&models.OrderLine{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

func orderLinesByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
