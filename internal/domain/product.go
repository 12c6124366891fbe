package domain

import "time"

type Product struct {
	ID               string
	Name             string
	Description      string
	Price            float64
	Stock            int
	Featured         bool
	Published        bool
	CategoryID       string
	Material         string
	CareInstructions string
	CreatedAt        time.Time

	Images   []ProductImage
	Variants []ProductVariant
}

type ProductVariant struct {
	ID              string
	ProductID       string
	Size            string
	Color           string
	Stock           int
	PriceAdjustment float64
}

type ProductImage struct {
	ID           string
	ProductID    string
	ImageURL     string
	AltText      string
	DisplayOrder int
}

type Category struct {
	ID   string
	Name string
	Slug string
}
