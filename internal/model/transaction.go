package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCategory is the resolved name for a category id missing from the catalog.
const UnknownCategory = "Unknown"

// RawRecord is one transaction as it appears in a source document, keyed by field name.
// Values are left undecoded so each field can degrade independently.
type RawRecord map[string]json.RawMessage

// Transaction is a normalized transaction. Nil timestamps mean the source value
// was absent or could not be parsed.
type Transaction struct {
	EntryTime    *time.Time
	ValueTime    *time.Time
	PostingTime  *time.Time
	PurchaseTime *time.Time
	Amount       decimal.Decimal // negative = debit, positive = credit
	MerchantName string
	CategoryID   string
	CategoryName string
}

// IsDebit reports whether the transaction is an expense.
func (t Transaction) IsDebit() bool { return t.Amount.IsNegative() }

// IsCredit reports whether the transaction is income.
func (t Transaction) IsCredit() bool { return t.Amount.IsPositive() }

// Month returns the calendar month bucket of the entry time.
func (t Transaction) Month() (Month, bool) {
	if t.EntryTime == nil {
		return Month{}, false
	}
	return MonthOf(*t.EntryTime), true
}

// Month is a calendar year-month bucket.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the bucket containing ts.
func MonthOf(ts time.Time) Month {
	return Month{Year: ts.Year(), Month: ts.Month()}
}

// Before reports whether m is chronologically earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// String formats the month as "2006-01".
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
