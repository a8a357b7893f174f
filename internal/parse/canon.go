package parse

import (
	"strings"

	"favobot/internal/util"
)

// drinkRules maps raw fragments to the closed drink vocabulary. Order is the
// contract: "бархатное янтарное" must be probed before plain "бархатное",
// otherwise the amber variant can never win.
var drinkRules = []struct {
	canon string
	match func(t string) bool
}{
	{"жигули", containsAll("жигул")},
	{"немецкое", containsAll("немец")},
	{"прага", containsAll("праг")},
	{"бархатное янтарное", containsAll("бархат", "янтар")},
	{"бархатное", containsAll("бархат")},
	{"пшеничное", containsAll("пшенич")},
	{"чешское", containsAll("чешск")},
	{"лимонад", containsAll("лимонад")},
	{"квас", containsAll("квас")},
	{"мохито", containsAll("мохито")},
}

func containsAll(subs ...string) func(string) bool {
	return func(t string) bool {
		for _, sub := range subs {
			if !strings.Contains(t, sub) {
				return false
			}
		}
		return true
	}
}

// CanonDrink resolves a raw fragment to its canonical drink identity, or ""
// when no rule matches. Canonical names are fixed points of this function.
func CanonDrink(s string) string {
	t := util.Normalize(s)
	for _, rule := range drinkRules {
		if rule.match(t) {
			return rule.canon
		}
	}
	return ""
}

// CanonBottle resolves a bottle volume token ("2", "1,5", "3.0") to the
// canonical bottled-product name, or "" for an unknown volume class.
func CanonBottle(liters string) string {
	switch strings.ReplaceAll(liters, ",", ".") {
	case "1", "1.0":
		return "пэт 1л"
	case "1.5":
		return "пэт 1.5л"
	case "2", "2.0":
		return "пэт 2л"
	case "3", "3.0":
		return "пэт 3л"
	default:
		return ""
	}
}
