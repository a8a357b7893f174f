package internal

type ResultType string

const (
	ResultUnknown ResultType = "unknown"
	ResultOrder   ResultType = "order"
)

// Item is one recognized (or fallback) order line. Qty is nil when the line
// carried no usable quantity; Promo and Comment may be empty.
type Item struct {
	Shop    string
	Name    string
	UoM     string
	Qty     *int
	Promo   string
	Comment string
}

// ParseResult is the outcome of parsing one chat message. OrderDate is nil
// when no date could be resolved; Items is non-empty iff Type is ResultOrder.
type ParseResult struct {
	Type      ResultType
	Shop      string
	OrderDate *string
	Items     []Item
}

// RecordedItem is one persisted order line, addressed by its reporting date.
type RecordedItem struct {
	OrderDate string
	Shop      string
	Product   string
	UoM       string
	Qty       *int
	Promo     string
	Comment   string
}

// ReportRow is one detail row of a dated report. Shop is blanked on every row
// of a shop block except the first. Qty and Liters render as empty cells when
// nil.
type ReportRow struct {
	Shop    string
	Product string
	UoM     string
	Qty     *int
	Liters  *int
	Promo   string
	Comment string
}

// TotalRow is one row of the trailing per-product totals block.
type TotalRow struct {
	Product string
	UoM     string
	Qty     int
	Liters  int
}

type Report struct {
	OrderDate string
	Rows      []ReportRow
	Totals    []TotalRow
}

type ShopRow struct {
	ID         int
	Name       string
	Normalized string
	Active     bool
	DateAdded  string
}

type ProductRow struct {
	ID            int
	NameNorm      string
	DisplayName   string
	ContainerCode *string
	VolumeL       *float64
	PackSize      int
	PromoType     *string
	Active        bool
}

func IntPtr(v int) *int { return &v }

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
