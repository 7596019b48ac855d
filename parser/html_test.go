package parser

import "testing"

func TestExtractHTMLBasicFields(t *testing.T) {
	page := `<html><head>
		<meta name="description" content="A fine widget">
		<meta property="og:image" content="https://img.example/w.jpg?s=400">
	</head><body>
		<h1> Acme Widget </h1>
		<span class="product-price">€ 19,95</span>
	</body></html>`

	record := ExtractHTML(mustDoc(t, page))
	if record.ProductName != "Acme Widget" {
		t.Fatalf("name = %q", record.ProductName)
	}
	if record.LowestPrice == nil || *record.LowestPrice != 19.95 {
		t.Fatalf("lowest = %v", record.LowestPrice)
	}
	if record.HighestPrice != nil {
		t.Fatalf("highest = %v, want nil", *record.HighestPrice)
	}
	if record.ImageURL == nil || *record.ImageURL != "https://img.example/w.jpg" {
		t.Fatalf("image = %v", record.ImageURL)
	}
	if record.Description == nil || *record.Description != "A fine widget" {
		t.Fatalf("description = %v", record.Description)
	}
	if record.Currency != "EUR" {
		t.Fatalf("currency = %q", record.Currency)
	}
	if record.GTIN != nil || record.SKU != nil {
		t.Fatalf("gtin/sku must stay nil on the html path")
	}
}

func TestExtractHTMLEmptyPage(t *testing.T) {
	record := ExtractHTML(mustDoc(t, "<html><body></body></html>"))
	if record == nil {
		t.Fatalf("ExtractHTML must always return a record")
	}
	if record.ProductName != "" {
		t.Fatalf("name = %q, want empty", record.ProductName)
	}
	if record.LowestPrice != nil || record.OfferCount != nil || record.ImageURL != nil {
		t.Fatalf("fields should stay nil on an empty page: %+v", record)
	}
}

func TestExtractHTMLMetaPricesWin(t *testing.T) {
	page := `<html><head>
		<meta itemprop="lowPrice" content="449.00">
		<meta itemprop="highPrice" content="549.00">
	</head><body>
		<h1>Thing</h1>
		<span class="price">999,99 €</span>
	</body></html>`

	record := ExtractHTML(mustDoc(t, page))
	if record.LowestPrice == nil || *record.LowestPrice != 449 {
		t.Fatalf("lowest = %v", record.LowestPrice)
	}
	if record.HighestPrice == nil || *record.HighestPrice != 549 {
		t.Fatalf("highest = %v", record.HighestPrice)
	}
}

func TestExtractHTMLBrand(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "meta wins",
			page: `<html><head><meta itemprop="brand" content="Acme"></head><body><div class="brand-row">Other</div></body></html>`,
			want: "Acme",
		},
		{
			name: "class fallback",
			page: `<html><body><div class="product-brand">Acme</div></body></html>`,
			want: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ExtractHTML(mustDoc(t, tt.page))
			if record.Brand == nil || *record.Brand != tt.want {
				t.Fatalf("brand = %v, want %q", record.Brand, tt.want)
			}
		})
	}
}

func TestExtractHTMLOfferCount(t *testing.T) {
	tests := []struct {
		name string
		page string
		want int
	}{
		{
			name: "meta attribute",
			page: `<html><head><meta itemprop="offerCount" content="12"></head><body></body></html>`,
			want: 12,
		},
		{
			name: "offers anchor phrase",
			page: `<html><body><a href="#offers">7 Angebote vergleichen</a></body></html>`,
			want: 7,
		},
		{
			name: "singular phrase",
			page: `<html><body><a href="#offers">1 Angebot</a></body></html>`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := ExtractHTML(mustDoc(t, tt.page))
			if record.OfferCount == nil || *record.OfferCount != tt.want {
				t.Fatalf("offer count = %v, want %d", record.OfferCount, tt.want)
			}
		})
	}
}

func TestExtractHTMLImageFallback(t *testing.T) {
	page := `<html><body><img class="product-image" src="https://img.example/p.jpg?v=1"></body></html>`
	record := ExtractHTML(mustDoc(t, page))
	if record.ImageURL == nil || *record.ImageURL != "https://img.example/p.jpg" {
		t.Fatalf("image = %v", record.ImageURL)
	}
}

func TestExtractHTMLRatingAndReviews(t *testing.T) {
	page := `<html><head>
		<meta itemprop="ratingValue" content="4,3">
		<meta itemprop="reviewCount" content="89">
	</head><body></body></html>`

	record := ExtractHTML(mustDoc(t, page))
	if record.Rating == nil || *record.Rating != 4.3 {
		t.Fatalf("rating = %v", record.Rating)
	}
	if record.ReviewCount == nil || *record.ReviewCount != 89 {
		t.Fatalf("review count = %v", record.ReviewCount)
	}

	fallback := ExtractHTML(mustDoc(t, `<html><body><span class="rating-stars">4,7 von 5</span></body></html>`))
	if fallback.Rating == nil || *fallback.Rating != 4.7 {
		t.Fatalf("rating fallback = %v", fallback.Rating)
	}
}
