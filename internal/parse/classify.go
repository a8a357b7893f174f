package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"favobot/internal"
	"favobot/internal/util"
)

// ReviewComment flags fallback items that no specific rule recognized.
const ReviewComment = "нужна проверка"

var stopLines = map[string]struct{}{
	"спасибо":         {},
	"заранее спасибо": {},
	"добрый день":     {},
	"добрый вечер":    {},
	"здравствуйте":    {},
	"ок":              {},
	"окей":            {},
}

var (
	rePrice    = regexp.MustCompile(`по\s*(\d+)`)
	reBottle   = regexp.MustCompile(`(пэт|бутылк[аи]?)\s*([\d.,]+)\s*л?\s*[-–—]?\s*(\d+)?`)
	rePallet1  = regexp.MustCompile(`(\d+)\s+палл?[её]т[аоы]?\s+(.+)`)
	rePallet2  = regexp.MustCompile(`(.+?)\s+(\d+)\s+палл?[её]т[аоы]?`)
	reLiters   = regexp.MustCompile(`(\d+)\s*л`)
	reNameQty  = regexp.MustCompile(`^(.+?)\s+(\d+)$`)
	reAnyDigit = regexp.MustCompile(`\d+`)
)

// lineContext carries one line through the rule chain. Aside rules strip
// their fragment from s and accumulate the comment before any item rule runs.
type lineContext struct {
	shop    string
	raw     string
	s       string
	comment string
}

type lineRule struct {
	name string
	fire func(c *lineContext) (*internal.Item, bool)
}

// lineRules is an ordered first-match-wins chain; reordering changes
// classification (the pallet rule must see "2 паллета павлодар стекло"
// before the liter-total rule can misread a trailing "л" token).
var lineRules = []lineRule{
	{name: "skip", fire: ruleSkip},
	{name: "price_aside", fire: rulePriceAside},
	{name: "substitution_aside", fire: ruleSubstitutionAside},
	{name: "bottle_count", fire: ruleBottleCount},
	{name: "pallet", fire: rulePallet},
	{name: "liter_total", fire: ruleLiterTotal},
	{name: "name_count", fire: ruleNameCount},
	{name: "promo_only", fire: rulePromoOnly},
	{name: "gas_cylinder", fire: ruleGasCylinder},
	{name: "fallback", fire: ruleFallback},
}

// ClassifyLine turns one trimmed message line into zero or one item. It is a
// pure function: same line, same result.
func ClassifyLine(shop, line string) *internal.Item {
	raw := strings.TrimSpace(line)
	c := &lineContext{shop: shop, raw: raw, s: strings.ToLower(raw)}
	for _, rule := range lineRules {
		if item, done := rule.fire(c); done {
			return item
		}
	}
	return nil
}

func ruleSkip(c *lineContext) (*internal.Item, bool) {
	if !util.HasAlnum(c.raw) {
		return nil, true
	}
	if _, ok := stopLines[c.s]; ok {
		return nil, true
	}
	return nil, false
}

func rulePriceAside(c *lineContext) (*internal.Item, bool) {
	if m := rePrice.FindStringSubmatch(c.s); m != nil {
		c.comment = strings.TrimSpace(c.comment + "по " + m[1])
		c.s = strings.TrimSpace(strings.Replace(c.s, m[0], "", 1))
	}
	return nil, false
}

func ruleSubstitutionAside(c *lineContext) (*internal.Item, bool) {
	if strings.Contains(c.s, "замена") {
		c.comment = strings.TrimSpace(c.comment + " замена")
		c.s = strings.TrimSpace(strings.Replace(c.s, "замена", "", 1))
	}
	return nil, false
}

func ruleBottleCount(c *lineContext) (*internal.Item, bool) {
	m := reBottle.FindStringSubmatch(c.s)
	if m == nil {
		return nil, false
	}
	canon := CanonBottle(m[2])
	if canon == "" {
		return nil, false
	}

	qty := 1
	if m[3] != "" {
		qty, _ = strconv.Atoi(m[3])
	}
	uom := "меш"
	if size := BagSize(canon); size > 0 {
		uom = "меш " + strconv.Itoa(size) + " шт"
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    canon,
		UoM:     uom,
		Qty:     internal.IntPtr(qty),
		Comment: c.comment,
	}, true
}

func rulePallet(c *lineContext) (*internal.Item, bool) {
	var qty int
	var tail string
	if m := rePallet1.FindStringSubmatch(c.s); m != nil {
		qty, _ = strconv.Atoi(m[1])
		tail = m[2]
	} else if m := rePallet2.FindStringSubmatch(c.s); m != nil {
		qty, _ = strconv.Atoi(m[2])
		tail = m[1]
	} else {
		return nil, false
	}

	// Only the Pavlodar glass pallet is a known product; other pallet
	// phrasings fall through to later rules.
	if !strings.Contains(tail, "павлодар") || !strings.Contains(tail, "стекло") {
		return nil, false
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    "павлодарское стекло 0.45л",
		UoM:     UoMPallet20,
		Qty:     internal.IntPtr(qty),
		Comment: c.comment,
	}, true
}

// ruleLiterTotal reads "Бархатное 60 л" as a total volume, not a unit count:
// the keg size of the drink's family divides it back into kegs.
func ruleLiterTotal(c *lineContext) (*internal.Item, bool) {
	m := reLiters.FindStringSubmatch(c.s)
	if m == nil {
		return nil, false
	}
	liters, _ := strconv.Atoi(m[1])

	base := CanonDrink(c.s)
	if base == "" {
		base = "бархатное"
	}
	size := KegSize(base)
	uom := UoMKeg30
	if size == 50 {
		uom = UoMKeg50
	}

	qty := int(math.Round(float64(liters) / float64(size)))
	if qty < 1 {
		qty = 1
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    base,
		UoM:     uom,
		Qty:     internal.IntPtr(qty),
		Comment: c.comment,
	}, true
}

func ruleNameCount(c *lineContext) (*internal.Item, bool) {
	m := reNameQty.FindStringSubmatch(c.s)
	if m == nil {
		return nil, false
	}
	qty, _ := strconv.Atoi(m[2])

	name := strings.TrimSpace(m[1])
	uom := ""
	if canon := CanonDrink(name); canon != "" {
		name = canon
		uom = KegUoM(canon)
	}

	promo := ""
	if strings.Contains(c.s, "акци") {
		promo = DefaultPromo(name)
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    name,
		UoM:     uom,
		Qty:     internal.IntPtr(qty),
		Promo:   promo,
		Comment: c.comment,
	}, true
}

func rulePromoOnly(c *lineContext) (*internal.Item, bool) {
	if !strings.Contains(c.s, "акци") {
		return nil, false
	}
	base := CanonDrink(c.s)
	if base == "" {
		base = c.s
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    base,
		UoM:     KegUoM(base),
		Qty:     internal.IntPtr(1),
		Promo:   DefaultPromo(base),
		Comment: c.comment,
	}, true
}

func ruleGasCylinder(c *lineContext) (*internal.Item, bool) {
	if !strings.Contains(c.s, "баллон") || !strings.Contains(c.s, "углекислот") {
		return nil, false
	}
	qty := 1
	if m := reAnyDigit.FindString(c.s); m != "" {
		qty, _ = strconv.Atoi(m)
	}
	return &internal.Item{
		Shop:    c.shop,
		Name:    "Баллон углекислоты",
		UoM:     UoMCylinder,
		Qty:     internal.IntPtr(qty),
		Comment: c.comment,
	}, true
}

// ruleFallback keeps every line the chain could not read: the raw text
// becomes the item name and the review marker asks a human to look at it.
func ruleFallback(c *lineContext) (*internal.Item, bool) {
	return &internal.Item{
		Shop:    c.shop,
		Name:    c.raw,
		Comment: ReviewComment,
	}, true
}
