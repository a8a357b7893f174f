package parse

import "testing"

func TestLitersPerUnit(t *testing.T) {
	cases := []struct {
		name    string
		uom     string
		product string
		want    int
	}{
		{name: "velvet keg 30", uom: "кега 30 л", product: "бархатное", want: 30},
		{name: "german keg 30", uom: "кега 30 л", product: "немецкое", want: 30},
		{name: "zhiguli keg 50", uom: "кега 50 л", product: "жигули", want: 50},
		{name: "kvass keg 50", uom: "кега 50 л", product: "квас", want: 50},
		{name: "container code a30", uom: "a30", product: "что угодно", want: 30},
		{name: "container code p30", uom: "p30", product: "", want: 30},
		{name: "container code kr50", uom: "kr50", product: "", want: 50},
		{name: "container code p50", uom: "p50", product: "", want: 50},
		{name: "literal keg 30 unknown product", uom: "кега 30 л", product: "тархун", want: 30},
		{name: "literal keg 50 unknown product", uom: "кега 50 л", product: "тархун", want: 50},
		{name: "bag is not a keg", uom: "меш 50 шт", product: "пэт 2л", want: 0},
		{name: "cylinder", uom: "баллон", product: "Баллон углекислоты", want: 0},
		{name: "empty", uom: "", product: "", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LitersPerUnit(tc.uom, tc.product); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestKegUoM(t *testing.T) {
	cases := []struct {
		canon string
		want  string
	}{
		{"немецкое", UoMKeg30},
		{"бархатное янтарное", UoMKeg30},
		{"чешское", UoMKeg30},
		{"жигули", UoMKeg50},
		{"мохито", UoMKeg50},
		{"неизвестное", ""},
	}

	for _, tc := range cases {
		if got := KegUoM(tc.canon); got != tc.want {
			t.Fatalf("KegUoM(%q) = %q, want %q", tc.canon, got, tc.want)
		}
	}
}

func TestBagSize(t *testing.T) {
	cases := []struct {
		canon string
		want  int
	}{
		{"пэт 1л", 100},
		{"пэт 1.5л", 60},
		{"пэт 2л", 50},
		{"пэт 3л", 40},
		{"пэт 5л", 0},
	}

	for _, tc := range cases {
		if got := BagSize(tc.canon); got != tc.want {
			t.Fatalf("BagSize(%q) = %d, want %d", tc.canon, got, tc.want)
		}
	}
}
