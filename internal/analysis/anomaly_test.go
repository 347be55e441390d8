package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope/spendscope/internal/model"
)

func TestDetectAnomalies_FlagsOutlier(t *testing.T) {
	// With n amounts no z-score can exceed (n-1)/sqrt(n), so the outlier
	// needs enough ordinary company to clear a threshold of 2.
	var txns []model.Transaction
	for _, a := range []string{"-100", "-105", "-98", "-102", "-99", "-101", "-103", "-97", "-100", "-104"} {
		txns = append(txns, txn("2025-01-10", a, "ICA", "Groceries"))
	}
	txns = append(txns, txn("2025-01-20", "-5000", "Jeweller", "Shopping"))

	result := DetectAnomalies(txns, DefaultAnomalyThreshold)
	require.Len(t, result.Flagged, 1)
	assert.Equal(t, "-5000", result.Flagged[0].Transaction.Amount.String())
	assert.Equal(t, "Jeweller", result.Flagged[0].Transaction.MerchantName)
	assert.Less(t, result.Flagged[0].ZScore, -2.0)
	assert.InDelta(t, 2.0, result.Threshold, 1e-9)
	assert.Greater(t, result.StdDev, 0.0)
}

func TestDetectAnomalies_FourPointsCannotExceedTwo(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-01", "-100", "a", "x"),
		txn("2025-01-02", "-105", "b", "x"),
		txn("2025-01-03", "-98", "c", "x"),
		txn("2025-01-04", "-5000", "d", "x"),
	}
	assert.Empty(t, DetectAnomalies(txns, 2).Flagged)

	// A lower threshold picks out the same outlier alone.
	result := DetectAnomalies(txns, 1.4)
	require.Len(t, result.Flagged, 1)
	assert.Equal(t, "d", result.Flagged[0].Transaction.MerchantName)
}

func TestDetectAnomalies_ZeroVariance(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-01", "-50", "a", "x"),
		txn("2025-01-02", "-50", "b", "x"),
		txn("2025-01-03", "-50", "c", "x"),
	}
	result := DetectAnomalies(txns, DefaultAnomalyThreshold)
	assert.Empty(t, result.Flagged)
	assert.InDelta(t, 0, result.StdDev, 1e-12)
}

func TestDetectAnomalies_TooFewTransactions(t *testing.T) {
	assert.Empty(t, DetectAnomalies(nil, 2).Flagged)
	assert.Empty(t, DetectAnomalies([]model.Transaction{txn("", "-1", "a", "x")}, 2).Flagged)
}

func TestDetectAnomalies_IncludesCreditsSortedDescending(t *testing.T) {
	var txns []model.Transaction
	for i := 0; i < 20; i++ {
		txns = append(txns, txn("2025-02-01", "-10", "Cafe", "Food"))
	}
	txns = append(txns,
		txn("2025-02-02", "-900", "Airline", "Travel"),
		txn("2025-02-03", "900", "Airline refund", "Travel"),
	)

	result := DetectAnomalies(txns, DefaultAnomalyThreshold)
	require.Len(t, result.Flagged, 2)
	assert.Equal(t, "900", result.Flagged[0].Transaction.Amount.String())
	assert.Equal(t, "-900", result.Flagged[1].Transaction.Amount.String())
	assert.Greater(t, result.Flagged[0].ZScore, 0.0)
}
