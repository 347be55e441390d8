// Package analysis derives aggregates, recurring payments, anomalies and
// spending trends from normalized transactions. All functions are pure and
// never modify their input.
package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spendscope/spendscope/internal/model"
)

// Timer records the duration of a named stage.
type Timer interface {
	AddTiming(name string) func()
}

type noopTimer struct{}

func (noopTimer) AddTiming(string) func() { return func() {} }

// Options configures an Analyzer.
type Options struct {
	Recurring         RecurringConfig
	AnomalyThreshold  float64
	SkipLeadingMonths int
}

// DefaultOptions returns the standard analysis options.
func DefaultOptions() Options {
	return Options{
		Recurring:        DefaultRecurringConfig(),
		AnomalyThreshold: DefaultAnomalyThreshold,
	}
}

// Report bundles the results of one analysis run.
type Report struct {
	Summary   model.AnalysisResult
	Recurring model.RecurringPaymentResult
	Anomalies model.AnomalyResult
	Trend     model.TrendResult
}

// Analyzer runs the independent analyses over one normalized set.
type Analyzer struct {
	opts  Options
	timer Timer
}

// New creates an Analyzer. A nil timer disables stage timing.
func New(opts Options, timer Timer) *Analyzer {
	if timer == nil {
		timer = noopTimer{}
	}
	return &Analyzer{opts: opts, timer: timer}
}

// Run evaluates all analyses concurrently. The transactions are only read.
func (a *Analyzer) Run(ctx context.Context, txns []model.Transaction) (*Report, error) {
	var report Report
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		defer a.timer.AddTiming("aggregate")()
		report.Summary = Aggregate(txns)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		defer a.timer.AddTiming("recurring")()
		report.Recurring = DetectRecurring(txns, a.opts.Recurring)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		defer a.timer.AddTiming("anomalies")()
		report.Anomalies = DetectAnomalies(txns, a.opts.AnomalyThreshold)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		defer a.timer.AddTiming("trend")()
		report.Trend = Trend(txns, a.opts.SkipLeadingMonths)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &report, nil
}
