package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"favobot/internal"
	"favobot/internal/config"
	"favobot/internal/orders"
	"favobot/internal/parse"
	"favobot/internal/report"
	"favobot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:seed":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		csvPath := fs.String("csv", cfg.ProductsCSV, "products csv path")
		_ = fs.Parse(os.Args[2:])
		count, err := db.SeedProductsCSV(*csvPath)
		must(err)
		fmt.Printf("catalog seed complete: %d products\n", count)
	case "parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "raw message text")
		file := fs.String("file", "", "path to a file with the message text")
		date := fs.String("date", "", "order date override DD.MM.YYYY")
		record := fs.Bool("record", false, "persist the parsed order")
		_ = fs.Parse(os.Args[2:])

		input := *text
		if strings.TrimSpace(*file) != "" {
			data, err := os.ReadFile(*file)
			must(err)
			input = string(data)
		}
		if strings.TrimSpace(input) == "" {
			must(fmt.Errorf("--text or --file is required"))
		}

		res := parse.ParseMessage(input, "", *date)
		if res.Type != internal.ResultOrder {
			fmt.Println("not recognized as an order")
			return
		}

		orderDate := ""
		if res.OrderDate != nil {
			orderDate = *res.OrderDate
		}
		fmt.Printf("shop=%s date=%s items=%d\n", res.Shop, orderDate, len(res.Items))
		for _, item := range res.Items {
			qty := "-"
			if item.Qty != nil {
				qty = fmt.Sprintf("%d", *item.Qty)
			}
			fmt.Printf("  %-30s uom=%-12s qty=%-4s promo=%-4s %s\n",
				item.Name, item.UoM, qty, item.Promo, item.Comment)
		}

		if *record {
			svc := orders.NewService(db)
			rec, err := svc.Record(res, 0, 0, input, *date)
			must(err)
			fmt.Printf("recorded order id=%d trace=%s date=%s items=%d review=%d\n",
				rec.OrderID, rec.TraceID, rec.OrderDate, rec.Items, rec.Review)
		}
	case "report:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", parse.Today(), "order date DD.MM.YYYY")
		out := fs.String("out", cfg.OutputDir, "output directory")
		_ = fs.Parse(os.Args[2:])

		svc := orders.NewService(db)
		rep, err := svc.ReportForDate(*date)
		must(err)
		if len(rep.Rows) == 0 {
			must(fmt.Errorf("no orders for %s", *date))
		}
		path, err := report.ExportXLSX(rep, *out)
		must(err)
		fmt.Printf("exported %d rows to %s\n", len(rep.Rows), path)
	case "shops:list":
		shops, err := db.ListShops()
		must(err)
		if len(shops) == 0 {
			fmt.Println("no shops")
			return
		}
		for _, s := range shops {
			status := "inactive"
			if s.Active {
				status = "active"
			}
			fmt.Printf("%d\t%s\t%s\t%s\n", s.ID, s.Name, status, s.DateAdded)
		}
	case "shops:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int("id", 0, "shop id")
		_ = fs.Parse(os.Args[2:])
		if *id == 0 {
			must(fmt.Errorf("--id is required"))
		}
		must(db.DeleteShop(*id))
		fmt.Printf("deleted shop id=%d with its orders\n", *id)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: favobot <command> [flags]")
	fmt.Println("commands:")
	fmt.Println("  catalog:seed   --csv path")
	fmt.Println("  parse          --text|--file [--date DD.MM.YYYY] [--record]")
	fmt.Println("  report:xlsx    [--date DD.MM.YYYY] [--out dir]")
	fmt.Println("  shops:list")
	fmt.Println("  shops:delete   --id N")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
