package parser

import (
	"reflect"
	"testing"
)

const searchBase = "https://www.billiger.de/search?searchstring=laptop"

func TestFindProductLinks(t *testing.T) {
	page := `<html><body>
		<a href="/products/laptop-a">A</a>
		<a href="/pricelist/123">B</a>
		<a href="https://www.billiger.de/baseproducts/9">C</a>
		<a href="/products/laptop-a">duplicate</a>
		<a href="/products/laptop-b#offers">fragment</a>
		<a href="/unrelated/page">other</a>
	</body></html>`

	links := FindProductLinks(mustDoc(t, page), searchBase)
	want := []string{
		"https://www.billiger.de/products/laptop-a",
		"https://www.billiger.de/pricelist/123",
		"https://www.billiger.de/baseproducts/9",
	}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
}

func TestFindNextPage(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "aria label",
			page: `<html><body><a aria-label="Nächste Seite" href="/search?page=2">next</a></body></html>`,
			want: "https://www.billiger.de/search?page=2",
		},
		{
			name: "next class",
			page: `<html><body><a class="pagination-next" href="/search?page=3">weiter</a></body></html>`,
			want: "https://www.billiger.de/search?page=3",
		},
		{
			name: "glyph",
			page: `<html><body><a href="/search?page=4">›</a></body></html>`,
			want: "https://www.billiger.de/search?page=4",
		},
		{
			name: "double glyph",
			page: `<html><body><a href="/search?page=9">»</a></body></html>`,
			want: "https://www.billiger.de/search?page=9",
		},
		{
			name: "active entry fallback",
			page: `<html><body><ul>
				<li><a aria-current="page" href="/search?page=2">2</a></li>
				<li><a href="/search?page=3">3</a></li>
			</ul></body></html>`,
			want: "https://www.billiger.de/search?page=3",
		},
		{
			name: "no pagination",
			page: `<html><body><a href="/products/x">a product</a></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindNextPage(mustDoc(t, tt.page), searchBase); got != tt.want {
				t.Fatalf("FindNextPage = %q, want %q", got, tt.want)
			}
		})
	}
}
