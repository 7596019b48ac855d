// Package models defines the canonical record shapes produced by the scraper.
package models

import "time"

// ProductRecord is the normalized product entity emitted for every detail
// page that yields a usable product name. Pointer fields encode "unknown":
// they marshal to JSON null when the source page carried no value.
type ProductRecord struct {
	ProductName  string         `json:"product_name"`
	Brand        *string        `json:"brand"`
	GTIN         *string        `json:"gtin"`
	SKU          *string        `json:"sku"`
	LowestPrice  *float64       `json:"lowest_price"`
	HighestPrice *float64       `json:"highest_price"`
	OfferCount   *int           `json:"offer_count"`
	Rating       *float64       `json:"rating"`
	ReviewCount  *int           `json:"review_count"`
	ImageURL     *string        `json:"image_url"`
	Currency     string         `json:"currency"`
	Description  *string        `json:"description"`
	ProductURL   string         `json:"product_url"`
	Variants     []Variant      `json:"variants,omitempty"`
	Offers       []OfferRecord  `json:"offers,omitempty"`
	ScrapedAt    time.Time      `json:"scraped_at"`
}

// OfferRecord is one per-seller offer row from a product detail page.
// ShopName and a positive Price are required for inclusion; TotalPrice is
// Price+ShippingCost unless the page states an explicit total.
type OfferRecord struct {
	ShopName     string  `json:"shop_name"`
	Price        float64 `json:"price"`
	ShippingCost float64 `json:"shipping_cost"`
	TotalPrice   float64 `json:"total_price"`
	OfferURL     *string `json:"offer_url"`
}

// Variant is a product variation advertised by the structured data of a
// product group page.
type Variant struct {
	Name        string   `json:"name"`
	SKU         *string  `json:"sku"`
	GTIN        *string  `json:"gtin"`
	URL         *string  `json:"url"`
	LowestPrice *float64 `json:"lowest_price"`
	OfferCount  *int     `json:"offer_count"`
}

// ScrapeResult summarizes one crawl run.
type ScrapeResult struct {
	StartTime    time.Time
	EndTime      time.Time
	SavedCount   int
	SearchPages  int
	ErrorCount   int
	FailedURLs   []string
	ErrorsByType map[string]int
	RetryCount   int
	RequestCount int
}
