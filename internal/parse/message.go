package parse

import (
	"strings"

	"favobot/internal"
)

// ParseMessage parses one chat message into an order. The first line names
// the shop unless shopOverride is given, in which case every line is an item
// line. dateOverride wins over a date extracted from the text. Parsing never
// touches storage; catalog ids are resolved in a separate materialize step.
func ParseMessage(text, shopOverride, dateOverride string) internal.ParseResult {
	lines := splitLines(text)
	if len(lines) == 0 {
		return internal.ParseResult{Type: internal.ResultUnknown}
	}

	shop := shopOverride
	if shop == "" {
		shop = lines[0]
		// A stray "заявки на 06.11" announcement sometimes opens the
		// message; discard it and take the next line as the shop.
		lower := strings.ToLower(shop)
		if strings.Contains(lower, "заявк") && strings.Contains(lower, "на") && len(lines) > 1 {
			shop = lines[1]
			lines = lines[1:]
		}
		lines = lines[1:]
	}

	orderDate := &dateOverride
	if dateOverride == "" {
		orderDate = NormalizeOrderDate(text)
	}

	items := make([]internal.Item, 0, len(lines))
	for _, line := range lines {
		if item := ClassifyLine(shop, line); item != nil {
			items = append(items, *item)
		}
	}
	if len(items) == 0 {
		return internal.ParseResult{Type: internal.ResultUnknown}
	}

	return internal.ParseResult{
		Type:      internal.ResultOrder,
		Shop:      shop,
		OrderDate: orderDate,
		Items:     items,
	}
}

func splitLines(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
