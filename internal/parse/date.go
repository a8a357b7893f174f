package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	headerPattern = regexp.MustCompile(`(?i)заявк[аи]?\s+на\s+\d{1,2}[.\-/]\d{1,2}[.\-/]\d{2,4}`)
	datePattern   = regexp.MustCompile(`(?i)заявк[аи]\s+на\s+(\d{1,2}\.\d{1,2}(?:\.\d{2,4})?)`)
)

// IsOrderHeader reports whether the message is a date-announcement header
// ("заявки на 06.11.2025"). Such messages set the chat's reporting date and
// are never parsed as orders.
func IsOrderHeader(text string) bool {
	return headerPattern.MatchString(text)
}

// NormalizeOrderDate extracts the order date from a "заявк[а/и] на D.M[.Y]"
// fragment and canonicalizes it to DD.MM.YYYY. Returns nil when the text
// carries no such fragment.
func NormalizeOrderDate(text string) *string {
	return normalizeOrderDateAt(text, time.Now())
}

func normalizeOrderDateAt(text string, now time.Time) *string {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	parts := strings.Split(m[1], ".")
	day, month := parts[0], parts[1]
	year := strconv.Itoa(now.Year())
	if len(parts) == 3 {
		year = parts[2]
		if len(year) == 2 {
			year = "20" + year
		}
	}

	d, err := strconv.Atoi(day)
	if err != nil {
		return nil
	}
	mth, err := strconv.Atoi(month)
	if err != nil {
		return nil
	}

	out := fmt.Sprintf("%02d.%02d.%s", d, mth, year)
	return &out
}

// Today returns the current date in the report's DD.MM.YYYY form.
func Today() string {
	return time.Now().Format("02.01.2006")
}
