package parser

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{name: "empty", raw: "", ok: false},
		{name: "no digits", raw: "€ --", ok: false},
		{name: "plain", raw: "499.99", want: 499.99, ok: true},
		{name: "comma decimal", raw: "19,95", want: 19.95, ok: true},
		{name: "currency prefix", raw: "€ 19,95", want: 19.95, ok: true},
		{name: "currency suffix", raw: "29,99 €", want: 29.99, ok: true},
		{name: "embedded whitespace", raw: " 1 299,00 ", want: 1299, ok: true},
		{name: "integer", raw: "7", want: 7, ok: true},
		{name: "zero is a price", raw: "0", want: 0, ok: true},
		{name: "text around", raw: "ab 4,99 € Versand", want: 4.99, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.raw)
			if !tt.ok {
				if got != nil {
					t.Fatalf("ParsePrice(%q) = %v, want nil", tt.raw, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePrice(%q) = nil, want %v", tt.raw, tt.want)
			}
			if *got != tt.want {
				t.Fatalf("ParsePrice(%q) = %v, want %v", tt.raw, *got, tt.want)
			}
		})
	}
}

func TestParsePriceIdempotent(t *testing.T) {
	for _, raw := range []string{"499.99", "19,95", "€ 29,99", "0", "7"} {
		first := ParsePrice(raw)
		if first == nil {
			t.Fatalf("ParsePrice(%q) = nil", raw)
		}
		second := ParsePrice(FormatPrice(first))
		if second == nil || *second != *first {
			t.Fatalf("ParsePrice round-trip for %q: first=%v second=%v", raw, *first, second)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(nil); got != "" {
		t.Fatalf("FormatPrice(nil) = %q, want empty", got)
	}
	v := 19.95
	if got := FormatPrice(&v); got != "19.95" {
		t.Fatalf("FormatPrice(19.95) = %q", got)
	}
}
