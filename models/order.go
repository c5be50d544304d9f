package models

import "time"

// OrderStatus represents the lifecycle state of a delivery order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
)

// Order is keyed by a random UUID so customers can't guess each other's ids;
// the id is the only thing needed to read an order's status.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;size:36"`
	CustomerName    string        `json:"customer_name" gorm:"not null"`
	CustomerPhone   string        `json:"customer_phone" gorm:"not null"`
	CustomerAddress string        `json:"customer_address" gorm:"not null"`
	TotalAmount     int64         `json:"total_amount" gorm:"not null"`
	Status          OrderStatus   `json:"status" gorm:"not null;default:'pending';index"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"not null;default:'cod'"`
	Lines           []OrderLine   `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time     `json:"created_at" gorm:"index"`
}

// OrderLine is a priced cart line. PriceAtTime is copied from the menu when the
// order is placed and never recomputed.
type OrderLine struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OrderID     string   `json:"order_id" gorm:"not null;size:36;index"`
	MenuItemID  uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem    MenuItem `json:"-" gorm:"foreignKey:MenuItemID"`
	Quantity    int      `json:"quantity" gorm:"not null"`
	PriceAtTime int64    `json:"price_at_time" gorm:"not null"`
}
