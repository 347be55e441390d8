package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spendscope/spendscope/internal/model"
)

// ErrMissingTransactions is returned when an export has no transaction list.
var ErrMissingTransactions = errors.New("export has no account_transactions list")

// JSONParser parses the bank's JSON account export.
type JSONParser struct{}

type jsonExport struct {
	Transactions *[]json.RawMessage `json:"account_transactions"`
}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Parse reads {"account_transactions": [...]} and returns one record per element.
// An element that is not an object becomes an empty record, which normalizes to
// an undated zero-amount transaction instead of failing the export.
func (p *JSONParser) Parse(r io.Reader) ([]model.RawRecord, error) {
	var doc jsonExport
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON export: %w", err)
	}
	if doc.Transactions == nil {
		return nil, ErrMissingTransactions
	}

	records := make([]model.RawRecord, 0, len(*doc.Transactions))
	for _, raw := range *doc.Transactions {
		var rec model.RawRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec == nil {
			rec = model.RawRecord{}
		}
		records = append(records, rec)
	}
	return records, nil
}
