package service

import (
	"context"
	"errors"
	"strconv"

	"restaurant-order-api/models"
	"restaurant-order-api/store"
)

// MenuItemInput is the full set of editable menu item fields.
type MenuItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsVeg       bool   `json:"is_veg"`
	IsAvailable bool   `json:"is_available"`
}

func (in MenuItemInput) toModel() models.MenuItem {
	return models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsVeg:       in.IsVeg,
		IsAvailable: in.IsAvailable,
	}
}

type CatalogService struct {
	catalog *store.Catalog
}

func NewCatalogService(catalog *store.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, storeErr("list menu", err)
	}
	return items, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list full menu", err)
	}
	return items, nil
}

func (s *CatalogService) Create(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	item := in.toModel()
	if err := s.catalog.Create(ctx, &item); err != nil {
		return nil, storeErr("create menu item", err)
	}
	return &item, nil
}

// Replace overwrites all fields of an existing item; omitted booleans become false.
func (s *CatalogService) Replace(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	item, err := s.catalog.Replace(ctx, id, in.toModel())
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "menu item", ID: strconv.FormatUint(uint64(id), 10)}
	}
	if err != nil {
		return nil, storeErr("replace menu item", err)
	}
	return item, nil
}
