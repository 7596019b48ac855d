package parser

import "testing"

const offersBase = "https://www.billiger.de/products/acme-widget"

func TestExtractOffersShippingAndTotal(t *testing.T) {
	page := `<html><body>
		<div data-offer-row>
			<button title="Shop-Info" aria-label="Shop-Informationen für TechStore"></button>
			<span>29,99 €</span>
			<span>zzgl. 4,99 € Versand</span>
			<a href="/redirect/out?offer=1">Zum Shop</a>
		</div>
	</body></html>`

	offers := ExtractOffers(mustDoc(t, page), offersBase)
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(offers))
	}
	offer := offers[0]
	if offer.ShopName != "TechStore" {
		t.Fatalf("shop = %q", offer.ShopName)
	}
	if offer.Price != 29.99 {
		t.Fatalf("price = %v", offer.Price)
	}
	if offer.ShippingCost != 4.99 {
		t.Fatalf("shipping = %v", offer.ShippingCost)
	}
	if offer.TotalPrice != 34.98 {
		t.Fatalf("total = %v, want price+shipping", offer.TotalPrice)
	}
	if offer.OfferURL == nil || *offer.OfferURL != "https://www.billiger.de/redirect/out?offer=1" {
		t.Fatalf("offer url = %v", offer.OfferURL)
	}
}

func TestExtractOffersExplicitTotal(t *testing.T) {
	page := `<html><body>
		<div class="offer-row">
			<img alt="MegaMarkt" src="/logo.png">
			<span>100,00 €</span>
			<span>ab 5,95 € Versand</span>
			<span>105,95 € Gesamt</span>
		</div>
	</body></html>`

	offers := ExtractOffers(mustDoc(t, page), offersBase)
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(offers))
	}
	if offers[0].ShopName != "MegaMarkt" {
		t.Fatalf("shop = %q, want img alt fallback", offers[0].ShopName)
	}
	if offers[0].TotalPrice != 105.95 {
		t.Fatalf("total = %v, want explicit total", offers[0].TotalPrice)
	}
}

func TestExtractOffersLinkTitleFallback(t *testing.T) {
	page := `<html><body>
		<div class="offer-item-wide">
			<a title="OnlineKauf" href="https://shop.example/p/1">49,90 €</a>
		</div>
	</body></html>`

	offers := ExtractOffers(mustDoc(t, page), offersBase)
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(offers))
	}
	if offers[0].ShopName != "OnlineKauf" {
		t.Fatalf("shop = %q, want link title fallback", offers[0].ShopName)
	}
	if offers[0].ShippingCost != 0 {
		t.Fatalf("shipping = %v, want default 0", offers[0].ShippingCost)
	}
	if offers[0].TotalPrice != 49.90 {
		t.Fatalf("total = %v", offers[0].TotalPrice)
	}
	if offers[0].OfferURL == nil || *offers[0].OfferURL != "https://shop.example/p/1" {
		t.Fatalf("offer url = %v, want first absolute link", offers[0].OfferURL)
	}
}

func TestExtractOffersSkipsUnusableRows(t *testing.T) {
	page := `<html><body>
		<div data-offer-row>
			<span>19,99 € without any shop label</span>
		</div>
		<div data-offer-row>
			<img alt="NoPriceShop" src="/l.png">
			<span>Preis auf Anfrage</span>
		</div>
		<div data-offer-row>
			<img alt="GoodShop" src="/l.png">
			<span>12,50 €</span>
		</div>
	</body></html>`

	offers := ExtractOffers(mustDoc(t, page), offersBase)
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want only the complete row", len(offers))
	}
	if offers[0].ShopName != "GoodShop" || offers[0].Price != 12.50 {
		t.Fatalf("offer = %+v", offers[0])
	}
}

func TestExtractOffersDeduplicates(t *testing.T) {
	page := `<html><body>
		<div data-offer-row>
			<img alt="TechStore" src="/l.png"><span>29,99 €</span>
			<a href="/redirect/1">go</a>
		</div>
		<div data-offer-row>
			<img alt="TechStore" src="/l.png"><span>29,99 €</span>
			<a href="/redirect/2">go</a>
		</div>
		<div data-offer-row>
			<img alt="TechStore" src="/l.png"><span>27,99 €</span>
		</div>
	</body></html>`

	offers := ExtractOffers(mustDoc(t, page), offersBase)
	if len(offers) != 2 {
		t.Fatalf("offers = %d, want duplicate (shop, price) dropped", len(offers))
	}
	if offers[0].OfferURL == nil || *offers[0].OfferURL != "https://www.billiger.de/redirect/1" {
		t.Fatalf("first occurrence must win: %v", offers[0].OfferURL)
	}
	if offers[1].Price != 27.99 {
		t.Fatalf("second offer = %+v", offers[1])
	}
}

func TestExtractOffersEmptyPage(t *testing.T) {
	if offers := ExtractOffers(mustDoc(t, "<html><body></body></html>"), offersBase); len(offers) != 0 {
		t.Fatalf("offers = %d, want none", len(offers))
	}
}
