package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/model"
)

// Weekdays in report order.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Aggregate computes totals and grouped debit sums. Debits without an entry
// time are counted in totals, category and merchant views but not in the
// month and weekday views.
func Aggregate(txns []model.Transaction) model.AnalysisResult {
	spent := decimal.Zero
	income := decimal.Zero
	for _, t := range txns {
		switch {
		case t.IsDebit():
			spent = spent.Add(t.Amount)
		case t.IsCredit():
			income = income.Add(t.Amount)
		}
	}

	return model.AnalysisResult{
		TotalSpent:         spent,
		TotalIncome:        income,
		NetChange:          income.Add(spent),
		SpendingByCategory: groupDebits(txns, func(t model.Transaction) string { return t.CategoryName }),
		SpendingByMonth:    MonthlySpending(txns),
		SpendingByMerchant: groupDebits(txns, func(t model.Transaction) string { return t.MerchantName }),
		SpendingByWeekday:  weekdaySpending(txns),
	}
}

// groupDebits sums debits per key, ascending by signed sum (most negative first).
// Equal sums are ordered by key.
func groupDebits(txns []model.Transaction, key func(model.Transaction) string) []model.GroupAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		k := key(t)
		sums[k] = sums[k].Add(t.Amount)
	}

	out := make([]model.GroupAmount, 0, len(sums))
	for k, v := range sums {
		out = append(out, model.GroupAmount{Key: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c < 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// MonthlySpending sums debits per entry month in chronological order.
func MonthlySpending(txns []model.Transaction) []model.MonthAmount {
	sums := make(map[model.Month]decimal.Decimal)
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		m, ok := t.Month()
		if !ok {
			continue
		}
		sums[m] = sums[m].Add(t.Amount)
	}

	out := make([]model.MonthAmount, 0, len(sums))
	for m, v := range sums {
		out = append(out, model.MonthAmount{Month: m, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// weekdaySpending returns debit magnitudes for all seven weekdays, Monday first.
func weekdaySpending(txns []model.Transaction) []model.WeekdayAmount {
	sums := make(map[time.Weekday]decimal.Decimal, len(Weekdays))
	for _, t := range txns {
		if !t.IsDebit() || t.EntryTime == nil {
			continue
		}
		day := t.EntryTime.Weekday()
		sums[day] = sums[day].Add(t.Amount.Abs())
	}

	out := make([]model.WeekdayAmount, len(Weekdays))
	for i, day := range Weekdays {
		out[i] = model.WeekdayAmount{Day: day, Amount: sums[day]}
	}
	return out
}
