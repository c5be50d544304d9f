package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"restaurant-order-api/models"
	"restaurant-order-api/statemachine"
	"restaurant-order-api/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrderReceipt is what the customer gets back after placing an order.
type OrderReceipt struct {
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
}

// OrderStatusView is the customer-facing status read. It deliberately has no
// customer fields: anyone holding the order id can read it.
type OrderStatusView struct {
	ID          string             `json:"id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount int64              `json:"total_amount"`
	CreatedAt   time.Time          `json:"created_at"`
}

// LineView is an order line joined with its menu item's current name.
type LineView struct {
	MenuItemID uint   `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
}

// OrderView is the admin view of an order.
type OrderView struct {
	ID              string               `json:"id"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress string               `json:"customer_address"`
	TotalAmount     int64                `json:"total_amount"`
	Status          models.OrderStatus   `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	CreatedAt       time.Time            `json:"created_at"`
	Items           []LineView           `json:"items"`
}

// StatusCache is an optional read-through cache for order status lookups.
// Reads fill it with Add, which never replaces an existing entry; status
// writes overwrite it with Set.
type StatusCache interface {
	Get(ctx context.Context, orderID string) (*OrderStatusView, bool, error)
	Add(ctx context.Context, view *OrderStatusView) error
	Set(ctx context.Context, view *OrderStatusView) error
	Invalidate(ctx context.Context, orderID string) error
}

// Observer receives order events after they are committed.
type Observer interface {
	OrderPlaced(method models.PaymentMethod, total int64)
	StatusChanged(status models.OrderStatus)
}

// OrderEngine prices and records orders and applies status changes.
type OrderEngine struct {
	catalog  *store.Catalog
	ledger   *store.Ledger
	validate *validator.Validate
	log      *slog.Logger

	cache    StatusCache
	observer Observer
	strict   bool
	newID    func() string
}

type OrderOption func(*OrderEngine)

// WithStatusCache serves GetOrderStatus from c when possible.
func WithStatusCache(c StatusCache) OrderOption {
	return func(e *OrderEngine) { e.cache = c }
}

func WithObserver(o Observer) OrderOption {
	return func(e *OrderEngine) { e.observer = o }
}

// WithStrictTransitions makes SetOrderStatus follow the lifecycle graph instead
// of accepting any status.
func WithStrictTransitions(strict bool) OrderOption {
	return func(e *OrderEngine) { e.strict = strict }
}

func NewOrderEngine(catalog *store.Catalog, ledger *store.Ledger, log *slog.Logger, opts ...OrderOption) *OrderEngine {
	e := &OrderEngine{
		catalog:  catalog,
		ledger:   ledger,
		validate: newValidator(),
		log:      log,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitOrder validates the cart, prices it from the catalog and commits the order
// with its lines atomically. Client-supplied prices are never consulted.
func (e *OrderEngine) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error) {
	if err := e.ValidateOrder(req); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.MenuItemID)
	}
	menu, err := e.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("load menu prices", err)
	}

	// Availability is a listing filter only; a hidden item can still be ordered.
	var total int64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for i, line := range req.Items {
		item, ok := menu[line.MenuItemID]
		if !ok {
			return nil, &ReferenceError{MenuItemID: line.MenuItemID}
		}
		sub, ok := lineTotal(item.Price, line.Quantity)
		if !ok || total > math.MaxInt64-sub {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Order total is too large",
			}
		}
		total += sub
		lines = append(lines, models.OrderLine{
			MenuItemID:  item.ID,
			Quantity:    line.Quantity,
			PriceAtTime: item.Price,
		})
	}

	order := &models.Order{
		ID:              e.newID(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     total,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := e.ledger.Create(ctx, order, lines); err != nil {
		return nil, storeErr("create order", err)
	}

	e.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", total),
		slog.Int("lines", len(lines)),
		slog.String("payment_method", string(order.PaymentMethod)),
	)
	if e.observer != nil {
		e.observer.OrderPlaced(order.PaymentMethod, total)
	}
	return &OrderReceipt{OrderID: order.ID, TotalAmount: total}, nil
}

// ValidateOrder checks req against the order schema and reports the first
// failing field.
func (e *OrderEngine) ValidateOrder(req OrderRequest) error {
	return validateStruct(e.validate, req)
}

// lineTotal multiplies a non-negative price by a positive quantity and reports
// false if the product doesn't fit in an int64.
func lineTotal(price int64, quantity int) (int64, bool) {
	if price < 0 || quantity < 0 {
		return 0, false
	}
	q := int64(quantity)
	if price != 0 && q > math.MaxInt64/price {
		return 0, false
	}
	return price * q, true
}

// GetOrderStatus returns the minimal status view of an order.
func (e *OrderEngine) GetOrderStatus(ctx context.Context, id string) (*OrderStatusView, error) {
	if e.cache != nil {
		view, ok, err := e.cache.Get(ctx, id)
		if err != nil {
			e.log.Warn("status cache read failed", slog.String("order_id", id), slog.Any("error", err))
		} else if ok {
			return view, nil
		}
	}

	order, err := e.ledger.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, storeErr("get order", err)
	}

	view := statusView(order)
	// A status write may have landed since the read above; Add leaves its entry alone.
	if e.cache != nil {
		if err := e.cache.Add(ctx, view); err != nil {
			e.log.Warn("status cache write failed", slog.String("order_id", id), slog.Any("error", err))
		}
	}
	return view, nil
}

func statusView(order *models.Order) *OrderStatusView {
	return &OrderStatusView{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
}

// GetOrder returns the full admin view of a single order.
func (e *OrderEngine) GetOrder(ctx context.Context, id string) (*OrderView, error) {
	order, err := e.ledger.GetWithLines(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, storeErr("get order", err)
	}
	view := toOrderView(*order)
	return &view, nil
}

// ListOrders returns all orders newest first with their lines.
func (e *OrderEngine) ListOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := e.ledger.ListWithLines(ctx)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views, nil
}

// SetOrderStatus overwrites the order's status. Unless strict transitions are
// enabled any known status may be set, including the current one.
func (e *OrderEngine) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: fieldMessages["status"]}
	}

	if e.strict {
		if err := e.setStatusStrict(ctx, id, status); err != nil {
			return err
		}
	} else {
		err := e.ledger.SetStatus(ctx, id, status)
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Entity: "order", ID: id}
		}
		if err != nil {
			return storeErr("set order status", err)
		}
	}

	e.refreshCachedStatus(ctx, id)
	e.log.Info("order status set", slog.String("order_id", id), slog.String("status", string(status)))
	if e.observer != nil {
		e.observer.StatusChanged(status)
	}
	return nil
}

// setStatusStrict only writes if the order still has the status the
// transition was checked against.
func (e *OrderEngine) setStatusStrict(ctx context.Context, id string, status models.OrderStatus) error {
	order, err := e.ledger.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return storeErr("get order", err)
	}
	if err := statemachine.CanTransition(order.Status, status); err != nil {
		return &TransitionError{From: string(order.Status), To: string(status), Reason: err.Error()}
	}

	err = e.ledger.SetStatusFrom(ctx, id, order.Status, status)
	if errors.Is(err, store.ErrStatusChanged) {
		return &TransitionError{
			From:   string(order.Status),
			To:     string(status),
			Reason: fmt.Sprintf("order status changed from %s while updating; retry", order.Status),
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return storeErr("set order status", err)
	}
	return nil
}

// refreshCachedStatus overwrites the cached view with the committed row so a
// concurrent read can't put the old status back.
func (e *OrderEngine) refreshCachedStatus(ctx context.Context, id string) {
	if e.cache == nil {
		return
	}
	order, err := e.ledger.Get(ctx, id)
	if err == nil {
		err = e.cache.Set(ctx, statusView(order))
	}
	if err == nil {
		return
	}
	e.log.Warn("status cache refresh failed", slog.String("order_id", id), slog.Any("error", err))
	if err := e.cache.Invalidate(ctx, id); err != nil {
		e.log.Warn("status cache invalidate failed", slog.String("order_id", id), slog.Any("error", err))
	}
}

func toOrderView(o models.Order) OrderView {
	items := make([]LineView, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, LineView{
			MenuItemID: l.MenuItemID,
			Name:       l.MenuItem.Name,
			Quantity:   l.Quantity,
			Price:      l.PriceAtTime,
		})
	}
	return OrderView{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}
