package models

// Product is one catalog item shown in the storefront flow.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"` // rubles
	Image       string `json:"image"` // local file path sent as a photo
}
