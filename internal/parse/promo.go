package parse

import "strings"

// PromoMultiplier converts a promotion label into a quantity multiplier:
// "3+1" means four kegs shipped per paid three, "5+1" means six. Unknown
// labels keep the multiplier at 1 and stay on the item verbatim for review.
func PromoMultiplier(promo string) int {
	switch strings.TrimSpace(promo) {
	case "3+1":
		return 4
	case "5+1":
		return 6
	default:
		return 1
	}
}

// DefaultPromo returns the standing promotion label for a canonical drink
// when a line mentions the promotion keyword without naming the deal.
func DefaultPromo(canon string) string {
	switch canon {
	case "немецкое":
		return "3+1"
	case "прага", "пшеничное":
		return "5+1"
	default:
		return ""
	}
}
