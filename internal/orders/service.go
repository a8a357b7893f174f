package orders

import (
	"fmt"

	"github.com/google/uuid"

	"favobot/internal"
	"favobot/internal/parse"
	"favobot/internal/report"
	"favobot/internal/storage"
)

// Service is the materialize step between the pure parser and the database:
// it resolves catalog identifiers and persists a complete parse result.
type Service struct {
	db *storage.DB
}

func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

type RecordResult struct {
	OrderID   int64
	TraceID   string
	OrderDate string
	Items     int
	Review    int
}

// Record persists an order parse result. fallbackDate fills in when the
// message carried no date; an empty fallback means today. Catalog lookups
// are tolerant: a missing identifier demotes the line to an ad hoc item,
// it never fails the order.
func (s *Service) Record(res internal.ParseResult, chatID int64, messageID int, rawText, fallbackDate string) (RecordResult, error) {
	if res.Type != internal.ResultOrder {
		return RecordResult{}, fmt.Errorf("cannot record a %s result", res.Type)
	}

	orderDate := fallbackDate
	if res.OrderDate != nil {
		orderDate = *res.OrderDate
	}
	if orderDate == "" {
		orderDate = parse.Today()
	}

	shopID, err := s.db.GetOrCreateShop(res.Shop)
	if err != nil {
		return RecordResult{}, err
	}

	review := 0
	inserts := make([]storage.ItemInsert, 0, len(res.Items))
	for _, item := range res.Items {
		insert := storage.ItemInsert{Item: item}
		if item.Comment == parse.ReviewComment {
			// Fallback lines stay uncatalogued; minting catalog rows
			// from raw text would breed duplicates.
			review++
		} else {
			productID, err := s.db.GetOrCreateProduct(item.Name)
			if err != nil {
				return RecordResult{}, err
			}
			insert.ProductID = productID
		}
		inserts = append(inserts, insert)
	}

	traceID := uuid.NewString()
	orderID, err := s.db.RecordOrder(shopID, chatID, messageID, traceID, orderDate, rawText, inserts)
	if err != nil {
		return RecordResult{}, err
	}

	_ = s.db.InsertRun(traceID, orderID, map[string]int{
		"items":  len(res.Items),
		"review": review,
	})

	return RecordResult{
		OrderID:   orderID,
		TraceID:   traceID,
		OrderDate: orderDate,
		Items:     len(res.Items),
		Review:    review,
	}, nil
}

// ReportForDate aggregates everything recorded under one reporting date.
// An empty report (no rows) means no orders were filed for that date.
func (s *Service) ReportForDate(orderDate string) (internal.Report, error) {
	if orderDate == "" {
		orderDate = parse.Today()
	}
	items, err := s.db.ListItemsByDate(orderDate)
	if err != nil {
		return internal.Report{}, err
	}
	return report.BuildReport(orderDate, items), nil
}
