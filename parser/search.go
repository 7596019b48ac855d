package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindProductLinks collects the product detail links on a search result
// page, resolved to absolute form, in document order and without
// duplicates. Fragment links are excluded; unresolvable hrefs are dropped.
func FindProductLinks(sel *goquery.Selection, baseURL string) []string {
	var links []string
	seen := make(map[string]struct{})

	sel.Find(`a[href*="/pricelist/"], a[href*="/baseproducts/"], a[href*="/products/"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		abs := AbsoluteURL(href, baseURL)
		if abs == "" || strings.Contains(abs, "#") {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}

// FindNextPage locates the pagination link to the next search result page:
// a "Nächste" aria-label, a next-tagged class or a ›/» glyph anchor, with
// the link after the active pagination entry as a fallback. Returns ""
// when the listing has no further page.
func FindNextPage(sel *goquery.Selection, baseURL string) string {
	next := sel.Find(`a[aria-label*="Nächste"], a[class*="next"]`).First()
	if next.Length() == 0 {
		sel.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			text := strings.TrimSpace(a.Text())
			if strings.Contains(text, "›") || strings.Contains(text, "»") {
				next = a
				return false
			}
			return true
		})
	}
	if next.Length() > 0 {
		if href, ok := next.Attr("href"); ok {
			if abs := AbsoluteURL(href, baseURL); abs != "" {
				return abs
			}
		}
	}

	current := sel.Find(`a[aria-current="page"], .pagination .active`).First()
	if current.Length() > 0 {
		if href, ok := current.Parent().Next().Find("a").Attr("href"); ok {
			return AbsoluteURL(href, baseURL)
		}
	}

	return ""
}
