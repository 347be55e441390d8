package analysis

import (
	"math"
	"sort"

	"github.com/spendscope/spendscope/internal/model"
)

// DefaultAnomalyThreshold is the |z| above which an amount is flagged.
const DefaultAnomalyThreshold = 2.0

// DetectAnomalies flags transactions whose amount lies more than threshold
// standard deviations from the mean of all amounts, debits and credits
// together. A dataset with zero or undefined spread has no anomalies.
// Flagged transactions are ordered by amount descending.
func DetectAnomalies(txns []model.Transaction, threshold float64) model.AnomalyResult {
	result := model.AnomalyResult{Threshold: threshold}

	amounts := make([]float64, len(txns))
	for i, t := range txns {
		amounts[i] = t.Amount.InexactFloat64()
	}
	m, ok := mean(amounts)
	if !ok {
		return result
	}
	std, ok := sampleStdDev(amounts)
	if !ok {
		return result
	}
	result.Mean = m
	result.StdDev = std

	for i, t := range txns {
		z, ok := zScore(amounts[i], m, std)
		if !ok {
			return result
		}
		if math.Abs(z) > threshold {
			result.Flagged = append(result.Flagged, model.FlaggedTransaction{Transaction: t, ZScore: z})
		}
	}

	sort.SliceStable(result.Flagged, func(i, j int) bool {
		return result.Flagged[i].Transaction.Amount.GreaterThan(result.Flagged[j].Transaction.Amount)
	})
	return result
}
