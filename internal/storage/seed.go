package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"favobot/internal"
)

// SeedProductsCSV upserts the product catalog from a CSV file with a header
// row (name_norm, display_name, container_code, volume_l, pack_size,
// promo_type, active). Returns the number of rows applied.
func (d *DB) SeedProductsCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"name_norm", "display_name"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("csv is missing column %q", required)
		}
	}

	cell := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}

		p := internal.ProductRow{
			NameNorm:    cell(record, "name_norm"),
			DisplayName: cell(record, "display_name"),
			PackSize:    1,
			Active:      true,
		}
		if p.NameNorm == "" || p.DisplayName == "" {
			continue
		}
		if v := cell(record, "container_code"); v != "" {
			p.ContainerCode = internal.StringPtr(v)
		}
		if v := cell(record, "volume_l"); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				p.VolumeL = internal.FloatPtr(parsed)
			}
		}
		if v := cell(record, "pack_size"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				p.PackSize = parsed
			}
		}
		if v := cell(record, "promo_type"); v != "" {
			p.PromoType = internal.StringPtr(v)
		}
		if v := cell(record, "active"); v != "" {
			p.Active = v != "0"
		}

		if err := d.UpsertProduct(p); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
