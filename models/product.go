package models

import "time"

// Product is one foundation shade as stored in makeup_products
type Product struct {
	ProductID   string    `json:"productId" db:"product_id"`
	Brand       string    `json:"brand" db:"brand"`
	ProductLine string    `json:"productLine" db:"product_line"`
	ShadeName   string    `json:"shadeName" db:"shade_name"`
	HexColor    string    `json:"hexColor" db:"hex_color"`
	LabL        float64   `json:"labL" db:"lab_l"`
	LabA        float64   `json:"labA" db:"lab_a"`
	LabB        float64   `json:"labB" db:"lab_b"`
	Undertone   string    `json:"undertone" db:"undertone"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ShadeResponse is a catalog shade as returned by /v1/products
type ShadeResponse struct {
	ProductID   string     `json:"productId,omitempty"`
	Brand       string     `json:"brand"`
	ProductLine string     `json:"productLine,omitempty"`
	Name        string     `json:"name"`
	Hex         string     `json:"hex"`
	Lab         [3]float64 `json:"lab"`
	Undertone   string     `json:"undertone"`
}

// BrandSummary lists a catalog brand and its shade count
type BrandSummary struct {
	Brand      string `json:"brand"`
	ShadeCount int    `json:"shadeCount"`
}
