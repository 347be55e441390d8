package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupAmount is a signed sum keyed by a grouping label.
type GroupAmount struct {
	Key    string
	Amount decimal.Decimal
}

// MonthAmount is a signed sum for one calendar month.
type MonthAmount struct {
	Month  Month
	Amount decimal.Decimal
}

// WeekdayAmount is the spend magnitude for one weekday.
type WeekdayAmount struct {
	Day    time.Weekday
	Amount decimal.Decimal
}

// AnalysisResult holds the aggregate views of a normalized set.
type AnalysisResult struct {
	TotalSpent         decimal.Decimal // sum of debits, signed (<= 0)
	TotalIncome        decimal.Decimal
	NetChange          decimal.Decimal
	SpendingByCategory []GroupAmount   // ascending by signed amount
	SpendingByMonth    []MonthAmount   // chronological
	SpendingByMerchant []GroupAmount   // ascending by signed amount
	SpendingByWeekday  []WeekdayAmount // Monday first, always seven entries
}

// TopMerchants returns the n most negative merchant entries.
func (r AnalysisResult) TopMerchants(n int) []GroupAmount {
	if n < 0 || n > len(r.SpendingByMerchant) {
		n = len(r.SpendingByMerchant)
	}
	return r.SpendingByMerchant[:n]
}

// RecurringKind classifies a merchant with repeated stable debits.
type RecurringKind string

const (
	RecurringSubscription RecurringKind = "subscription"
	RecurringIrregular    RecurringKind = "irregular"
)

// MerchantProfile is the per-merchant working set of the recurring detector.
type MerchantProfile struct {
	Merchant       string
	Amounts        []decimal.Decimal // every debit, ordered by entry time, undated last
	Times          []time.Time       // entry times of the dated debits only
	MeanAmount     float64
	StdAmount      float64
	DayMedian      float64
	DayStd         float64
	DistinctMonths int
	SpanMonths     float64
}

// RecurringPayment is the summary record for a classified merchant.
type RecurringPayment struct {
	Merchant  string
	Amount    decimal.Decimal // mean magnitude, two decimals
	Frequency int
	Day       int // median day of month
	Kind      RecurringKind
	Profile   MerchantProfile
}

// RecurringPaymentResult lists classified merchants.
type RecurringPaymentResult struct {
	Subscriptions []RecurringPayment
	Irregular     []RecurringPayment // populated only when irregular reporting is enabled
}

// FlaggedTransaction is a transaction with an outlying amount.
type FlaggedTransaction struct {
	Transaction Transaction
	ZScore      float64
}

// AnomalyResult lists flagged transactions by amount descending.
type AnomalyResult struct {
	Mean      float64
	StdDev    float64
	Threshold float64
	Flagged   []FlaggedTransaction
}

// TrendDirection labels a month-over-month change.
type TrendDirection string

const (
	TrendIncrease TrendDirection = "increase"
	TrendDecrease TrendDirection = "decrease"
)

// TrendPoint is one month of the spending trend.
type TrendPoint struct {
	Month     Month
	Spend     decimal.Decimal // absolute spend
	PctChange float64
	Direction TrendDirection
}

// TrendResult is the chronological month-over-month series.
type TrendResult struct {
	Points []TrendPoint
}
