package store

import (
	"context"
	"fmt"

	"restaurant-order-api/models"
)

// DefaultMenu is loaded into an empty catalog on first start.
var DefaultMenu = []models.MenuItem{
	{
		Name:        "Truffle Mushroom Risotto",
		Description: "Creamy arborio rice with wild mushrooms and black truffle oil.",
		Price:       450,
		Category:    "Mains",
		ImageURL:    "https://images.unsplash.com/photo-1476124369491-e7addf5db371?auto=format&fit=crop&w=800&q=80",
		IsVeg:       true,
		IsAvailable: true,
	},
	{
		Name:        "Smoked BBQ Chicken Wings",
		Description: "Slow-cooked wings glazed in our signature hickory BBQ sauce.",
		Price:       320,
		Category:    "Starters",
		ImageURL:    "https://images.unsplash.com/photo-1527477396000-e27163b481c2?auto=format&fit=crop&w=800&q=80",
		IsAvailable: true,
	},
	{
		Name:        "Paneer Tikka Lababdar",
		Description: "Cottage cheese cubes simmered in a rich, spicy tomato gravy.",
		Price:       380,
		Category:    "Mains",
		ImageURL:    "https://images.unsplash.com/photo-1565557623262-b51c2513a641?auto=format&fit=crop&w=800&q=80",
		IsVeg:       true,
		IsAvailable: true,
	},
	{
		Name:        "Classic Beef Burger",
		Description: "Juicy patty with cheddar, caramelized onions, and secret sauce.",
		Price:       420,
		Category:    "Burgers",
		ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=800&q=80",
		IsAvailable: true,
	},
	{
		Name:        "Quinoa & Avocado Salad",
		Description: "Fresh greens, cherry tomatoes, and lemon vinaigrette.",
		Price:       290,
		Category:    "Salads",
		ImageURL:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80",
		IsVeg:       true,
		IsAvailable: true,
	},
	{
		Name:        "Belgian Chocolate Mousse",
		Description: "Rich dark chocolate mousse topped with sea salt.",
		Price:       250,
		Category:    "Desserts",
		ImageURL:    "https://images.unsplash.com/photo-1541783245831-57d6fb0926d3?auto=format&fit=crop&w=800&q=80",
		IsVeg:       true,
		IsAvailable: true,
	},
}

// SeedMenu inserts DefaultMenu when the catalog is empty. It reports how many
// items were inserted.
func SeedMenu(ctx context.Context, catalog *Catalog) (int, error) {
	n, err := catalog.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for _, item := range DefaultMenu {
		item := item
		if err := catalog.Create(ctx, &item); err != nil {
			return 0, fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
	}
	return len(DefaultMenu), nil
}
