package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spendscope/spendscope/internal/model"
)

// ErrMissingColumn is returned when a CSV export lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// CSVParser parses a flat CSV export whose header names the record fields.
// The amount and currency columns are folded into the nested amount structure.
type CSVParser struct{}

const (
	csvColAmount   = "amount"
	csvColCurrency = "currency"
)

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV export and returns RawRecords. Empty cells are omitted.
func (p *CSVParser) Parse(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV export: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, csvColAmount)
	}

	header := make([]string, len(records[0]))
	hasAmount := false
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] == csvColAmount {
			hasAmount = true
		}
	}
	if !hasAmount {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, csvColAmount)
	}

	out := make([]model.RawRecord, 0, len(records)-1)
	for i, row := range records[1:] {
		rec, err := csvRecord(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func csvRecord(header, row []string) (model.RawRecord, error) {
	rec := make(model.RawRecord, len(header))
	amount := map[string]string{}
	for i, name := range header {
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch name {
		case csvColAmount, csvColCurrency:
			amount[name] = value
		default:
			b, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", name, err)
			}
			rec[name] = b
		}
	}
	if len(amount) > 0 {
		b, err := json.Marshal(amount)
		if err != nil {
			return nil, fmt.Errorf("encoding amount: %w", err)
		}
		rec[model.FieldAmount] = b
	}
	return rec, nil
}
