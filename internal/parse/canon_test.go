package parse

import "testing"

func TestCanonDrink(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Жигули", "жигули"},
		{"жигулевское", "жигули"},
		{"Немецкое", "немецкое"},
		{"прага тёмная", "прага"},
		{"Бархатное", "бархатное"},
		{"бархатное янтарное", "бархатное янтарное"},
		{"янтарное бархатное", "бархатное янтарное"},
		{"Пшеничное", "пшеничное"},
		{"чешское светлое", "чешское"},
		{"Лимонад", "лимонад"},
		{"квас домашний", "квас"},
		{"мохито", "мохито"},
		{"кока-кола", ""},
	}

	for _, tc := range cases {
		if got := CanonDrink(tc.input); got != tc.want {
			t.Fatalf("CanonDrink(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// Canonical names must be fixed points, otherwise re-canonicalizing stored
// items would drift.
func TestCanonDrinkIdempotent(t *testing.T) {
	for _, rule := range drinkRules {
		if got := CanonDrink(rule.canon); got != rule.canon {
			t.Fatalf("CanonDrink(%q) = %q, not a fixed point", rule.canon, got)
		}
	}
}

func TestCanonBottle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1", "пэт 1л"},
		{"1.0", "пэт 1л"},
		{"1,5", "пэт 1.5л"},
		{"1.5", "пэт 1.5л"},
		{"2", "пэт 2л"},
		{"3.0", "пэт 3л"},
		{"0.5", ""},
	}

	for _, tc := range cases {
		if got := CanonBottle(tc.input); got != tc.want {
			t.Fatalf("CanonBottle(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
