package parser

import "github.com/aluiziolira/go-scrape-prices/models"

// Merge combines the structured-data record with the HTML fallback record.
// Structured data wins wherever it has a value; the HTML record fills a
// missing name, price bounds, offer count and image URL. With no structured
// record the HTML record is returned unmodified. Merge never mutates its
// inputs; callers must skip the page when the merged name is still empty.
func Merge(structured, html *models.ProductRecord) *models.ProductRecord {
	if structured == nil {
		return html
	}

	merged := *structured
	if html == nil {
		return &merged
	}

	if merged.ProductName == "" {
		merged.ProductName = html.ProductName
	}
	if merged.LowestPrice == nil {
		merged.LowestPrice = html.LowestPrice
	}
	if merged.HighestPrice == nil {
		merged.HighestPrice = html.HighestPrice
	}
	if merged.OfferCount == nil {
		merged.OfferCount = html.OfferCount
	}
	if merged.ImageURL == nil {
		merged.ImageURL = html.ImageURL
	}
	return &merged
}
