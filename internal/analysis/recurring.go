package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/model"
)

// daysPerMonth approximates a calendar month when measuring date spans.
const daysPerMonth = 30.5

// RecurringConfig holds the thresholds of the recurring payment detector.
type RecurringConfig struct {
	MinOccurrences  int     // debits a merchant needs before it is considered
	MaxAmountCV     float64 // amounts must vary less than this fraction of their mean
	MaxDayStd       float64 // day-of-month spread, in days
	MinMonths       int     // distinct calendar months observed
	ReportIrregular bool    // also return amount-stable merchants failing the day or month test
}

// DefaultRecurringConfig returns the standard thresholds.
func DefaultRecurringConfig() RecurringConfig {
	return RecurringConfig{
		MinOccurrences: 3,
		MaxAmountCV:    0.1,
		MaxDayStd:      3,
		MinMonths:      2,
	}
}

// MerchantProfiles groups debits by merchant and keeps merchants with at
// least minOccurrences debits. Undated debits count toward the floor and the
// amounts but not toward Times. Each profile is ordered by entry time with
// undated debits last; profiles are ordered by merchant name. Summary
// statistics are not filled in.
func MerchantProfiles(txns []model.Transaction, minOccurrences int) []model.MerchantProfile {
	byMerchant := make(map[string][]model.Transaction)
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		byMerchant[t.MerchantName] = append(byMerchant[t.MerchantName], t)
	}

	names := make([]string, 0, len(byMerchant))
	for name, group := range byMerchant {
		if len(group) >= minOccurrences {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	profiles := make([]model.MerchantProfile, 0, len(names))
	for _, name := range names {
		group := byMerchant[name]
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].EntryTime, group[j].EntryTime
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.Before(*b)
		})

		p := model.MerchantProfile{
			Merchant: name,
			Amounts:  make([]decimal.Decimal, len(group)),
		}
		for i, t := range group {
			p.Amounts[i] = t.Amount
			if t.EntryTime != nil {
				p.Times = append(p.Times, *t.EntryTime)
			}
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// DetectRecurring classifies merchants whose debits are stable in amount.
// A stable merchant is a subscription when its day of month is consistent and it
// spans enough distinct months; otherwise it is irregular.
func DetectRecurring(txns []model.Transaction, cfg RecurringConfig) model.RecurringPaymentResult {
	var result model.RecurringPaymentResult
	for _, p := range MerchantProfiles(txns, cfg.MinOccurrences) {
		kind, ok := classify(&p, cfg)
		if !ok {
			continue
		}
		payment := summarize(p, kind)
		switch kind {
		case model.RecurringSubscription:
			result.Subscriptions = append(result.Subscriptions, payment)
		case model.RecurringIrregular:
			if cfg.ReportIrregular {
				result.Irregular = append(result.Irregular, payment)
			}
		}
	}
	return result
}

// classify fills in the profile statistics. It reports false for merchants whose
// amounts are unstable or whose stability is undefined.
func classify(p *model.MerchantProfile, cfg RecurringConfig) (model.RecurringKind, bool) {
	amounts := make([]float64, len(p.Amounts))
	for i, a := range p.Amounts {
		amounts[i] = a.InexactFloat64()
	}
	p.MeanAmount, _ = mean(amounts)
	p.StdAmount, _ = sampleStdDev(amounts)

	cv, ok := coefficientOfVariation(amounts)
	if !ok || cv >= cfg.MaxAmountCV {
		return "", false
	}

	days := make([]float64, len(p.Times))
	months := make(map[model.Month]struct{})
	for i, ts := range p.Times {
		days[i] = float64(ts.Day())
		months[model.MonthOf(ts)] = struct{}{}
	}
	p.DayMedian, _ = median(days)
	dayStd, dayOK := sampleStdDev(days)
	p.DayStd = dayStd
	p.DistinctMonths = len(months)
	if n := len(p.Times); n > 0 {
		p.SpanMonths = p.Times[n-1].Sub(p.Times[0]).Hours() / 24 / daysPerMonth
	}

	if dayOK && dayStd < cfg.MaxDayStd && p.DistinctMonths >= cfg.MinMonths {
		return model.RecurringSubscription, true
	}
	return model.RecurringIrregular, true
}

func summarize(p model.MerchantProfile, kind model.RecurringKind) model.RecurringPayment {
	total := decimal.Zero
	for _, a := range p.Amounts {
		total = total.Add(a)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(p.Amounts)))).Abs().Round(2)

	return model.RecurringPayment{
		Merchant:  p.Merchant,
		Amount:    avg,
		Frequency: len(p.Amounts),
		Day:       int(p.DayMedian),
		Kind:      kind,
		Profile:   p,
	}
}
