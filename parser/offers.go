package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-scrape-prices/models"
)

// The row-level patterns below match billiger.de's German phrasing
// verbatim; the site renders "zzgl. 4,99 € Versand" style shipping notes
// and "NN,NN € Gesamt" totals.
var (
	rowPriceRe = regexp.MustCompile(`(\d+[.,]\d{2})\s*€`)
	shippingRe = regexp.MustCompile(`(?i)(?:ab|zzgl\.)\s*(\d+[.,]\d{2})\s*€\s*Versand`)
	totalRe    = regexp.MustCompile(`(?i)(\d+[.,]\d{2})\s*€\s*Gesamt`)
)

// ExtractOffers scans a detail page for per-seller offer rows. Rows without
// a shop name or a positive price are dropped; duplicate (shop, price)
// pairs keep their first occurrence.
func ExtractOffers(sel *goquery.Selection, baseURL string) []models.OfferRecord {
	var offers []models.OfferRecord

	sel.Find(`[data-offer-row], .offer-row, [class*="offer-item"]`).Each(func(_ int, row *goquery.Selection) {
		shopName := offerShopName(row)
		if shopName == "" {
			return
		}

		text := row.Text()
		priceMatch := rowPriceRe.FindStringSubmatch(text)
		if priceMatch == nil {
			return
		}
		price := ParsePrice(priceMatch[1])
		if price == nil || *price <= 0 {
			return
		}

		shipping := 0.0
		if m := shippingRe.FindStringSubmatch(text); m != nil {
			if s := ParsePrice(m[1]); s != nil {
				shipping = *s
			}
		}

		total := *price + shipping
		if m := totalRe.FindStringSubmatch(text); m != nil {
			if t := ParsePrice(m[1]); t != nil {
				total = *t
			}
		}

		offers = append(offers, models.OfferRecord{
			ShopName:     shopName,
			Price:        *price,
			ShippingCost: shipping,
			TotalPrice:   total,
			OfferURL:     offerLink(row, baseURL),
		})
	})

	return dedupeOffers(offers)
}

// offerShopName tries the Shop-Info control's aria-label first, then image
// alt text, then the title of a link.
func offerShopName(row *goquery.Selection) string {
	name, _ := row.Find(`button[title="Shop-Info"]`).Attr("aria-label")
	name = strings.Replace(name, "Shop-Informationen", "", 1)
	name = strings.Replace(name, "für", "", 1)
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if alt, ok := row.Find("img[alt]").Attr("alt"); ok {
		if alt = strings.TrimSpace(alt); alt != "" {
			return alt
		}
	}
	if title, ok := row.Find("a[title]").Attr("title"); ok {
		return strings.TrimSpace(title)
	}
	return ""
}

// offerLink prefers redirect-style links, then any resolvable link.
func offerLink(row *goquery.Selection, baseURL string) *string {
	href, ok := row.Find(`a[href*="redirect"]`).Attr("href")
	if !ok {
		href, _ = row.Find("a").Attr("href")
	}
	abs := AbsoluteURL(href, baseURL)
	if abs == "" {
		return nil
	}
	return &abs
}

type offerKey struct {
	shop  string
	price float64
}

func dedupeOffers(offers []models.OfferRecord) []models.OfferRecord {
	if len(offers) < 2 {
		return offers
	}
	seen := make(map[offerKey]struct{}, len(offers))
	out := offers[:0]
	for _, offer := range offers {
		key := offerKey{shop: offer.ShopName, price: offer.Price}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, offer)
	}
	return out
}
