package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope/spendscope/internal/model"
)

func TestDetectRecurring_StableMonthlyCharge(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-03-05", "-98.50", "Netflix", "Streaming"),
		txn("2025-01-05", "-99.00", "Netflix", "Streaming"),
		txn("2025-02-05", "-99.50", "Netflix", "Streaming"),
		txn("2025-04-05", "-99.00", "Netflix", "Streaming"),
	}

	result := DetectRecurring(txns, DefaultRecurringConfig())
	require.Len(t, result.Subscriptions, 1)

	sub := result.Subscriptions[0]
	assert.Equal(t, "Netflix", sub.Merchant)
	assert.Equal(t, "99.00", sub.Amount.StringFixed(2))
	assert.Equal(t, 4, sub.Frequency)
	assert.Equal(t, 5, sub.Day)
	assert.Equal(t, model.RecurringSubscription, sub.Kind)

	p := sub.Profile
	assert.Equal(t, 4, p.DistinctMonths)
	assert.InDelta(t, 0, p.DayStd, 1e-9)
	assert.InDelta(t, -99.0, p.MeanAmount, 1e-9)
	assert.InDelta(t, 0.4082, p.StdAmount, 1e-3)
	assert.InDelta(t, 90.0/30.5, p.SpanMonths, 1e-9)
	// Ordered by entry time.
	assert.Equal(t, "-99.00", p.Amounts[0].StringFixed(2))
	assert.Equal(t, "-98.50", p.Amounts[2].StringFixed(2))
	assert.True(t, p.Times[0].Before(p.Times[3]))
}

func TestDetectRecurring_VaryingAmounts(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "-10", "ICA", "Groceries"),
		txn("2025-02-05", "-200", "ICA", "Groceries"),
		txn("2025-03-05", "-15", "ICA", "Groceries"),
		txn("2025-04-05", "-300", "ICA", "Groceries"),
	}

	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions)
	assert.Empty(t, result.Irregular, "unstable amounts are neither subscription nor irregular")
}

func TestDetectRecurring_FrequencyFloor(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "-99", "Spotify", "Streaming"),
		txn("2025-02-05", "-99", "Spotify", "Streaming"),
	}

	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions)
	assert.Empty(t, result.Irregular)
	assert.Empty(t, MerchantProfiles(txns, cfg.MinOccurrences))
}

func TestDetectRecurring_IdenticalAmounts(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-28", "-149", "Gym", "Health"),
		txn("2025-02-27", "-149", "Gym", "Health"),
		txn("2025-03-28", "-149", "Gym", "Health"),
	}

	result := DetectRecurring(txns, DefaultRecurringConfig())
	require.Len(t, result.Subscriptions, 1)
	assert.Equal(t, "149.00", result.Subscriptions[0].Amount.StringFixed(2))
	assert.Equal(t, 28, result.Subscriptions[0].Day)
}

func TestDetectRecurring_ZeroMeanExcluded(t *testing.T) {
	// Only debits are considered, so a zero mean needs a custom profile.
	p := model.MerchantProfile{
		Merchant: "Zero",
		Amounts:  []decimal.Decimal{dec("1"), dec("-1"), dec("0")},
	}
	_, ok := classify(&p, DefaultRecurringConfig())
	assert.False(t, ok)
}

func TestDetectRecurring_IrregularDays(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-02", "-50", "Parking", "Transport"),
		txn("2025-01-15", "-50", "Parking", "Transport"),
		txn("2025-02-28", "-51", "Parking", "Transport"),
	}

	result := DetectRecurring(txns, DefaultRecurringConfig())
	assert.Empty(t, result.Subscriptions)
	assert.Empty(t, result.Irregular, "irregular merchants are hidden by default")

	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result = DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions)
	require.Len(t, result.Irregular, 1)
	assert.Equal(t, "Parking", result.Irregular[0].Merchant)
	assert.Equal(t, model.RecurringIrregular, result.Irregular[0].Kind)
	assert.Equal(t, 15, result.Irregular[0].Day)
}

func TestDetectRecurring_SingleMonth(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "-20", "Cafe", "Food"),
		txn("2025-01-06", "-20", "Cafe", "Food"),
		txn("2025-01-07", "-20", "Cafe", "Food"),
	}

	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions, "one month is not enough")
	assert.Len(t, result.Irregular, 1)
}

func TestDetectRecurring_IgnoresCredits(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "99", "Netflix", "Streaming"),
		txn("2025-02-05", "99", "Netflix", "Streaming"),
		txn("2025-03-05", "99", "Netflix", "Streaming"),
	}
	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions)
	assert.Empty(t, result.Irregular)
}

func TestDetectRecurring_UndatedOnly(t *testing.T) {
	txns := []model.Transaction{
		txn("", "-10", "Kiosk", "Food"),
		txn("", "-10", "Kiosk", "Food"),
		txn("", "-10", "Kiosk", "Food"),
	}
	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	assert.Empty(t, result.Subscriptions, "no dates means no day-of-month evidence")
	require.Len(t, result.Irregular, 1)
	assert.Equal(t, 3, result.Irregular[0].Frequency)
	assert.Empty(t, result.Irregular[0].Profile.Times)
}

func TestDetectRecurring_UndatedCountsTowardFrequency(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "-99", "Gym", "Health"),
		txn("", "-99", "Gym", "Health"),
		txn("2025-02-05", "-99", "Gym", "Health"),
	}
	cfg := DefaultRecurringConfig()
	cfg.ReportIrregular = true
	result := DetectRecurring(txns, cfg)
	require.Len(t, result.Subscriptions, 1)
	assert.Empty(t, result.Irregular)

	s := result.Subscriptions[0]
	assert.Equal(t, "Gym", s.Merchant)
	assert.Equal(t, 3, s.Frequency)
	assert.Equal(t, 5, s.Day)
	assert.True(t, s.Amount.Equal(dec("99")))
	assert.Len(t, s.Profile.Amounts, 3)
	assert.Len(t, s.Profile.Times, 2)
	assert.Equal(t, 2, s.Profile.DistinctMonths)
	assert.InDelta(t, 31.0/30.5, s.Profile.SpanMonths, 1e-9)
}

func TestMerchantProfiles_UndatedLast(t *testing.T) {
	txns := []model.Transaction{
		txn("", "-1", "Shop", "Misc"),
		txn("2025-02-01", "-2", "Shop", "Misc"),
		txn("2025-01-01", "-3", "Shop", "Misc"),
	}
	profiles := MerchantProfiles(txns, 3)
	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, []string{"-3", "-2", "-1"}, []string{p.Amounts[0].String(), p.Amounts[1].String(), p.Amounts[2].String()})
	require.Len(t, p.Times, 2)
	assert.True(t, p.Times[0].Before(p.Times[1]))
}

func TestDetectRecurring_MedianDayTruncates(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-05", "-10", "Cloud", "Software"),
		txn("2025-02-05", "-10", "Cloud", "Software"),
		txn("2025-03-06", "-10", "Cloud", "Software"),
		txn("2025-04-06", "-10", "Cloud", "Software"),
	}
	result := DetectRecurring(txns, DefaultRecurringConfig())
	require.Len(t, result.Subscriptions, 1)
	assert.InDelta(t, 5.5, result.Subscriptions[0].Profile.DayMedian, 1e-9)
	assert.Equal(t, 5, result.Subscriptions[0].Day)
}

func TestDetectRecurring_OrderedByMerchant(t *testing.T) {
	var txns []model.Transaction
	for _, m := range []string{"Zeta", "Alpha", "Mid"} {
		txns = append(txns,
			txn("2025-01-10", "-5", m, "Software"),
			txn("2025-02-10", "-5", m, "Software"),
			txn("2025-03-10", "-5", m, "Software"),
		)
	}
	result := DetectRecurring(txns, DefaultRecurringConfig())
	require.Len(t, result.Subscriptions, 3)
	assert.Equal(t, "Alpha", result.Subscriptions[0].Merchant)
	assert.Equal(t, "Mid", result.Subscriptions[1].Merchant)
	assert.Equal(t, "Zeta", result.Subscriptions[2].Merchant)
}
