package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/aluiziolira/go-scrape-prices/models"
)

// JSONLDBlocks collects the JSON-LD blocks embedded in a page, in document
// order. A block holding a top-level array contributes its elements
// individually. Blocks that fail to parse are skipped.
func JSONLDBlocks(sel *goquery.Selection) []gjson.Result {
	var blocks []gjson.Result
	sel.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		text := strings.TrimSpace(script.Text())
		if text == "" || !gjson.Valid(text) {
			return
		}
		parsed := gjson.Parse(text)
		if parsed.IsArray() {
			blocks = append(blocks, parsed.Array()...)
			return
		}
		blocks = append(blocks, parsed)
	})
	return blocks
}

// ExtractStructured scans JSON-LD blocks for the first Product or
// ProductGroup and maps it onto a ProductRecord. Returns nil when no block
// matches. ProductURL, Offers and ScrapedAt are left for the caller.
func ExtractStructured(blocks []gjson.Result) *models.ProductRecord {
	for _, item := range blocks {
		typ := item.Get("@type").String()
		if typ != "Product" && typ != "ProductGroup" {
			continue
		}

		offers := item.Get("offers")
		record := &models.ProductRecord{
			ProductName: item.Get("name").String(),
			Brand:       brandName(item.Get("brand")),
			GTIN:        firstString(item.Get("gtin13"), item.Get("gtin")),
			SKU:         firstString(item.Get("sku")),
			Rating:      positiveFloat(item.Get("aggregateRating.ratingValue")),
			ReviewCount: positiveInt(item.Get("aggregateRating.reviewCount")),
			ImageURL:    imageURL(item.Get("image")),
			Currency:    currencyOrDefault(offers),
			Description: firstString(item.Get("description")),
			Variants:    variants(item.Get("hasVariant")),
		}

		if offers.Get("@type").String() == "AggregateOffer" {
			record.LowestPrice = ParsePrice(offers.Get("lowPrice").String())
			record.HighestPrice = ParsePrice(offers.Get("highPrice").String())
			record.OfferCount = positiveInt(offers.Get("offerCount"))
		} else if price := offers.Get("price"); price.Exists() {
			record.LowestPrice = ParsePrice(price.String())
		}

		return record
	}
	return nil
}

// brandName handles both brand shapes: an object carrying a name, or a
// bare string.
func brandName(brand gjson.Result) *string {
	if brand.IsObject() {
		return firstString(brand.Get("name"))
	}
	if brand.Type == gjson.String {
		return firstString(brand)
	}
	return nil
}

// imageURL normalizes the image field, which may be a single URL, a list,
// or an object. For objects the content URL wins over the generic URL and
// the thumbnail; plain URLs lose query and fragment.
func imageURL(image gjson.Result) *string {
	if image.IsArray() {
		values := image.Array()
		if len(values) == 0 {
			return nil
		}
		image = values[0]
	}
	if image.IsObject() {
		for _, key := range []string{"contentUrl", "url", "thumbnailUrl"} {
			if v := image.Get(key); v.Type == gjson.String && v.String() != "" {
				cleaned := cleanImageURL(v.String())
				return &cleaned
			}
		}
		return nil
	}
	if image.Type != gjson.String || image.String() == "" {
		return nil
	}
	cleaned := cleanImageURL(image.String())
	return &cleaned
}

func currencyOrDefault(offers gjson.Result) string {
	if c := offers.Get("priceCurrency").String(); c != "" {
		return c
	}
	return "EUR"
}

func variants(list gjson.Result) []models.Variant {
	if !list.IsArray() {
		return nil
	}
	var out []models.Variant
	for _, v := range list.Array() {
		out = append(out, models.Variant{
			Name:        v.Get("name").String(),
			SKU:         firstString(v.Get("sku")),
			GTIN:        firstString(v.Get("gtin13"), v.Get("gtin")),
			URL:         firstString(v.Get("url")),
			LowestPrice: ParsePrice(v.Get("offers.lowPrice").String()),
			OfferCount:  positiveInt(v.Get("offers.offerCount")),
		})
	}
	return out
}

// firstString returns the first non-empty string among results.
func firstString(results ...gjson.Result) *string {
	for _, r := range results {
		if !r.Exists() {
			continue
		}
		if s := r.String(); s != "" {
			return &s
		}
	}
	return nil
}

// positiveInt parses a numeric field, collapsing zero, negative and
// unparsable values to nil. This mirrors the site markup where an absent
// count renders as 0.
func positiveInt(r gjson.Result) *int {
	n, err := strconv.Atoi(strings.TrimSpace(r.String()))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// positiveFloat is positiveInt for fractional values such as ratings.
func positiveFloat(r gjson.Result) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(r.String()), 64)
	if err != nil || f <= 0 {
		return nil
	}
	return &f
}
