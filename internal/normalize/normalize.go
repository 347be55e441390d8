// Package normalize converts raw export records into analyzable transactions.
//
// Normalization never fails: a malformed field degrades to its default for
// that record only. Stats reports how many fields degraded.
package normalize

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/catalog"
	"github.com/spendscope/spendscope/internal/model"
)

// CategoryResolver resolves category ids to names.
type CategoryResolver interface {
	Name(id string) string
	Exists(id string) bool
}

// Stats counts per-record degradations seen during normalization.
type Stats struct {
	Records           int
	InvalidTimestamps int // present but unparseable
	InvalidAmounts    int // absent or malformed, defaulted to zero
	UnknownCategories int
}

// Normalizer converts RawRecords into Transactions.
type Normalizer struct {
	categories CategoryResolver
}

// New creates a Normalizer resolving categories through c.
func New(c CategoryResolver) *Normalizer {
	return &Normalizer{categories: c}
}

// Normalize converts records in order. An empty input yields an empty, non-nil slice.
func (n *Normalizer) Normalize(records []model.RawRecord) ([]model.Transaction, Stats) {
	stats := Stats{Records: len(records)}
	txns := make([]model.Transaction, 0, len(records))
	for _, raw := range records {
		txns = append(txns, n.normalizeRecord(Project(raw), &stats))
	}
	return txns, stats
}

func (n *Normalizer) normalizeRecord(rec model.RawRecord, stats *Stats) model.Transaction {
	var txn model.Transaction

	txn.EntryTime = n.timestamp(rec, model.FieldEntryTime, stats)
	txn.ValueTime = n.timestamp(rec, model.FieldValueTime, stats)
	txn.PostingTime = n.timestamp(rec, model.FieldPostingTime, stats)
	txn.PurchaseTime = n.timestamp(rec, model.FieldPurchaseTime, stats)

	amount, ok := Amount(rec[model.FieldAmount])
	if !ok {
		stats.InvalidAmounts++
	}
	txn.Amount = amount

	txn.MerchantName = stringField(rec[model.FieldMerchant])

	id, err := catalog.ID(rec[model.FieldCategoryID])
	if err != nil {
		id = ""
	}
	txn.CategoryID = id
	if !n.categories.Exists(id) {
		stats.UnknownCategories++
	}
	txn.CategoryName = n.categories.Name(id)

	return txn
}

// Project returns a copy of rec without the administrative fields.
func Project(rec model.RawRecord) model.RawRecord {
	out := make(model.RawRecord, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, k := range model.AdministrativeFields {
		delete(out, k)
	}
	return out
}

// Amount extracts the signed amount from a nested {"amount": ...} structure.
// The amount may be a JSON string or number. Anything else yields zero and false.
func Amount(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 {
		return decimal.Zero, false
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil || nested == nil {
		return decimal.Zero, false
	}
	value, ok := nested["amount"]
	if !ok {
		return decimal.Zero, false
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}

	var num json.Number
	if err := json.Unmarshal(value, &num); err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
