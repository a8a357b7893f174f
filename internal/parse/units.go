package parse

import (
	"strings"

	"favobot/internal/util"
)

// Unit-of-measure labels used across reports and the catalog.
const (
	UoMKeg30    = "кега 30 л"
	UoMKeg50    = "кега 50 л"
	UoMPallet20 = "палл 20 шт"
	UoMCylinder = "баллон"
)

// keg50 lists the canonical identities shipped in 50-liter kegs; every other
// canonical drink ships in 30-liter kegs.
var keg50 = map[string]struct{}{
	"жигули":  {},
	"квас":    {},
	"лимонад": {},
	"мохито":  {},
}

// KegSize returns the standard keg volume for a canonical drink: 50 for the
// Жигули/квас/лимонад/мохито family, 30 for everything else.
func KegSize(canon string) int {
	if _, ok := keg50[canon]; ok {
		return 50
	}
	return 30
}

// KegUoM returns the keg unit label for a canonical drink, or "" when the
// name is not in the vocabulary.
func KegUoM(canon string) string {
	if CanonDrink(canon) == "" {
		return ""
	}
	if KegSize(canon) == 50 {
		return UoMKeg50
	}
	return UoMKeg30
}

// bagSizes maps a canonical bottle class to bottles per bag.
var bagSizes = map[string]int{
	"пэт 1л":   100,
	"пэт 1.5л": 60,
	"пэт 2л":   50,
	"пэт 3л":   40,
}

// BagSize returns bottles per bag for a canonical bottle class, 0 when
// unknown.
func BagSize(bottleCanon string) int {
	return bagSizes[bottleCanon]
}

// LitersPerUnit maps a (unit text, product name) pair to liters per ordered
// unit. Container codes (a30, p30, kr50, p50) short-circuit; otherwise the
// product family decides, confirmed by an explicit 30/50 in the unit text.
// Returns 0 when nothing matches — callers must omit liters, not write zero.
func LitersPerUnit(uom, product string) int {
	u := util.Normalize(uom)
	p := util.Normalize(product)

	switch {
	case strings.Contains(u, "a30"):
		return 30
	case (strings.Contains(p, "бархат") || strings.Contains(p, "пшенич")) && strings.Contains(u, "30"):
		return 30
	case strings.Contains(u, "p30"):
		return 30
	case (strings.Contains(p, "немец") || strings.Contains(p, "праг") || strings.Contains(p, "чешск")) && strings.Contains(u, "30"):
		return 30
	case strings.Contains(u, "kr50"):
		return 50
	case strings.Contains(p, "жигул") && strings.Contains(u, "50"):
		return 50
	case strings.Contains(u, "p50"):
		return 50
	case (strings.Contains(p, "лимонад") || strings.Contains(p, "квас") || strings.Contains(p, "мохито")) && strings.Contains(u, "50"):
		return 50
	case strings.Contains(u, "кега 30"):
		return 30
	case strings.Contains(u, "кега 50"):
		return 50
	}
	return 0
}
