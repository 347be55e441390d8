package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/model"
)

// txn builds a transaction; an empty date leaves the entry time unset.
func txn(date, amount, merchant, category string) model.Transaction {
	t := model.Transaction{
		Amount:       decimal.RequireFromString(amount),
		MerchantName: merchant,
		CategoryName: category,
	}
	if date != "" {
		ts, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		t.EntryTime = &ts
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
