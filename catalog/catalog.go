// Package catalog holds the static storefront content: finished pieces for
// sale and the per-category workshop descriptions.
package catalog

import "kilnbot/models"

var items = []models.Product{
	{
		ID:          1,
		Name:        "Speckled stoneware mug",
		Description: "Hand-thrown 350 ml mug, speckled clay under a satin white glaze. Food safe, dishwasher and microwave friendly.",
		Price:       1800,
		Image:       "assets/catalog/mug_speckled.jpg",
	},
	{
		ID:          2,
		Name:        "Serving bowl, ash glaze",
		Description: "Wide 24 cm serving bowl finished with a layered ash glaze. Each piece fires slightly differently, so yours is one of a kind.",
		Price:       3200,
		Image:       "assets/catalog/bowl_ash.jpg",
	},
	{
		ID:          3,
		Name:        "Bud vase pair",
		Description: "Two small matching vases, 12 and 15 cm, unglazed outside with a glossy interior. Sold as a pair.",
		Price:       2600,
		Image:       "assets/catalog/vase_pair.jpg",
	},
	{
		ID:          4,
		Name:        "Dinner plate set (4)",
		Description: "Four 27 cm dinner plates in warm cream. Stoneware fired at 1150°C, sturdy enough for everyday use.",
		Price:       6800,
		Image:       "assets/catalog/plates_cream.jpg",
	},
	{
		ID:          5,
		Name:        "Butter dish with lid",
		Description: "Classic lidded butter dish, cobalt brushwork on white. Fits a standard 180 g block.",
		Price:       2400,
		Image:       "assets/catalog/butter_dish.jpg",
	},
}

// Items returns the ordered product list used for paging.
func Items() []models.Product {
	return items
}

// Len reports how many products the storefront carries.
func Len() int {
	return len(items)
}

// ItemByID looks up a product by its catalog id.
func ItemByID(id int) (*models.Product, bool) {
	for i := range items {
		if items[i].ID == id {
			return &items[i], true
		}
	}
	return nil, false
}
