package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Trend computes the month-over-month change of absolute debit spend.
func Trend(txns []model.Transaction, skipLeadingMonths int) model.TrendResult {
	return TrendFromMonthly(MonthlySpending(txns), skipLeadingMonths)
}

// TrendFromMonthly computes month-over-month changes over a chronological
// monthly series. The first skipLeadingMonths entries are dropped before
// computing. The first remaining month has no prior value and is not reported;
// neither is any month whose prior spend is zero. A change of exactly zero is
// labeled a decrease.
func TrendFromMonthly(monthly []model.MonthAmount, skipLeadingMonths int) model.TrendResult {
	if skipLeadingMonths > 0 {
		if skipLeadingMonths >= len(monthly) {
			return model.TrendResult{}
		}
		monthly = monthly[skipLeadingMonths:]
	}

	var result model.TrendResult
	for i := 1; i < len(monthly); i++ {
		prev := monthly[i-1].Amount.Abs()
		cur := monthly[i].Amount.Abs()
		pct, ok := pctChange(prev, cur)
		if !ok {
			continue
		}

		direction := model.TrendDecrease
		if pct > 0 {
			direction = model.TrendIncrease
		}
		result.Points = append(result.Points, model.TrendPoint{
			Month:     monthly[i].Month,
			Spend:     cur,
			PctChange: pct,
			Direction: direction,
		})
	}
	return result
}

// pctChange is undefined for a zero prior value.
func pctChange(prev, cur decimal.Decimal) (float64, bool) {
	if prev.IsZero() {
		return 0, false
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).InexactFloat64(), true
}
