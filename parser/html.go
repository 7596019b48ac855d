package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-scrape-prices/models"
)

var (
	offerCountRe = regexp.MustCompile(`(?i)(\d+)\s*Angebote?`)
	numberRe     = regexp.MustCompile(`\d+[.,]?\d*`)
)

// ExtractHTML derives a product record from the visible HTML and meta tags
// of a detail page. It always returns a record; fields the page does not
// carry stay nil. GTIN and SKU are not recoverable from this path.
func ExtractHTML(sel *goquery.Selection) *models.ProductRecord {
	record := &models.ProductRecord{
		ProductName: strings.TrimSpace(sel.Find("h1").First().Text()),
		Brand:       htmlBrand(sel),
		Currency:    "EUR",
		Description: attrString(sel.Find(`meta[name="description"]`), "content"),
	}

	if low := metaPrice(sel, "lowPrice"); low != nil {
		record.LowestPrice = low
		record.HighestPrice = metaPrice(sel, "highPrice")
	} else if text := sel.Find(`[class*="price"]`).First().Text(); text != "" {
		record.LowestPrice = ParsePrice(text)
	}

	record.OfferCount = htmlOfferCount(sel)
	record.ImageURL = htmlImage(sel)
	record.Rating = htmlRating(sel)
	record.ReviewCount = metaInt(sel, "reviewCount")

	return record
}

func htmlBrand(sel *goquery.Selection) *string {
	if brand := attrString(sel.Find(`meta[itemprop="brand"]`), "content"); brand != nil {
		return brand
	}
	if text := strings.TrimSpace(sel.Find(`[class*="brand"]`).First().Text()); text != "" {
		return &text
	}
	return nil
}

// htmlOfferCount reads the dedicated meta attribute, falling back to the
// "N Angebote" phrase on the offers anchor.
func htmlOfferCount(sel *goquery.Selection) *int {
	if count := metaInt(sel, "offerCount"); count != nil {
		return count
	}
	text := sel.Find(`a[href="#offers"]`).Text()
	m := offerCountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func htmlImage(sel *goquery.Selection) *string {
	src := attrString(sel.Find(`meta[property="og:image"]`), "content")
	if src == nil {
		src = attrString(sel.Find(`img[class*="product"]`).First(), "src")
	}
	if src == nil {
		return nil
	}
	cleaned := cleanImageURL(*src)
	return &cleaned
}

func htmlRating(sel *goquery.Selection) *float64 {
	if content := attrString(sel.Find(`meta[itemprop="ratingValue"]`), "content"); content != nil {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(*content, ",", "."), 64); err == nil {
			return &f
		}
		return nil
	}
	text := sel.Find(`[class*="rating"]`).First().Text()
	m := numberRe.FindString(text)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}

func metaPrice(sel *goquery.Selection, itemprop string) *float64 {
	content := attrString(sel.Find(`meta[itemprop="`+itemprop+`"]`), "content")
	if content == nil {
		return nil
	}
	return ParsePrice(*content)
}

func metaInt(sel *goquery.Selection, itemprop string) *int {
	content := attrString(sel.Find(`meta[itemprop="`+itemprop+`"]`), "content")
	if content == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*content))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// attrString returns the first matched element's attribute, nil when the
// element or attribute is missing or empty.
func attrString(sel *goquery.Selection, attr string) *string {
	value, ok := sel.First().Attr(attr)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
