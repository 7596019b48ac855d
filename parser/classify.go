// Package parser holds the extraction core: URL classification, price
// normalization, structured-data and HTML product extraction, offer-row
// extraction, and the merge step that unifies both extraction paths. All
// functions are pure; fetching belongs to the scraper package.
package parser

import "strings"

// PageKind categorizes a URL by the kind of page it points at.
type PageKind int

const (
	// PageUnknown is any URL this crawler does not traverse.
	PageUnknown PageKind = iota
	// PageSearch is a search result listing.
	PageSearch
	// PageDetail is a product detail candidate.
	PageDetail
)

// String implements fmt.Stringer for log output.
func (k PageKind) String() string {
	switch k {
	case PageSearch:
		return "search"
	case PageDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// detailMarkers are the path fragments that identify product detail pages.
var detailMarkers = []string{"/pricelist/", "/baseproducts/", "/products/"}

// Classify maps a URL onto a PageKind by case-sensitive substring matching.
// Search wins over detail markers; an empty URL is unknown.
func Classify(rawURL string) PageKind {
	if rawURL == "" {
		return PageUnknown
	}
	if strings.Contains(rawURL, "/search") {
		return PageSearch
	}
	for _, marker := range detailMarkers {
		if strings.Contains(rawURL, marker) {
			return PageDetail
		}
	}
	return PageUnknown
}
