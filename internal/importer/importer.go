package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"localwear-storefront/internal/domain"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
}

// CSVImporter reads product sheets and creates each product through the admin API.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, writer ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		writer: writer,
	}
}

type csvRow struct {
	Line     int
	Name     string
	Desc     string
	Price    string
	Category string
	Sizes    []string
	Quantity string
	ImageURL string
}

// Run parses CSV rows and creates one product per named row. A row with an empty name only
// adds its sizes to the product above it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: missing name column")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.Line = line

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Sizes = append(current.Sizes, row.Sizes...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	in, err := row.input()
	if err != nil {
		return fmt.Errorf("line %d (%s): %w", row.Line, row.Name, err)
	}
	if _, err := i.writer.CreateProduct(ctx, in); err != nil {
		return fmt.Errorf("create product %q: %w", row.Name, err)
	}
	return nil
}

func (r *csvRow) input() (domain.ProductInput, error) {
	if r.Category == "" || r.Price == "" {
		return domain.ProductInput{}, fmt.Errorf("missing required fields: %w", domain.ErrValidation)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return domain.ProductInput{}, fmt.Errorf("invalid price %q: %w", r.Price, domain.ErrValidation)
	}
	qty := 0
	if r.Quantity != "" {
		qty, err = strconv.Atoi(r.Quantity)
		if err != nil || qty < 0 {
			return domain.ProductInput{}, fmt.Errorf("invalid quantity %q: %w", r.Quantity, domain.ErrValidation)
		}
	}
	sizes := ""
	if len(r.Sizes) > 0 {
		raw, err := json.Marshal(r.Sizes)
		if err != nil {
			return domain.ProductInput{}, fmt.Errorf("encode sizes: %w", err)
		}
		sizes = string(raw)
	}
	return domain.ProductInput{
		Name:            r.Name,
		Description:     r.Desc,
		Price:           price,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
		Sizes:           sizes,
		QuantityInStock: qty,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	sizes := splitSizes(pick(record, index, "sizes"))

	if name == "" && len(sizes) == 0 {
		return nil
	}

	return &csvRow{
		Name:     name,
		Desc:     pick(record, index, "description"),
		Price:    pick(record, index, "price"),
		Category: pick(record, index, "category"),
		Sizes:    sizes,
		Quantity: pick(record, index, "quantityInStock"),
		ImageURL: pick(record, index, "imageUrl"),
	}
}

// splitSizes accepts "S;M;L" or "S|M|L" inside a single cell.
func splitSizes(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' }) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
