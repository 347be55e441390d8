package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/model"
)

// Chart dataset file names.
const (
	MonthlyChartFile  = "monthly_spending.csv"
	CategoryChartFile = "category_spending.csv"
	MerchantChartFile = "top_merchants.csv"
	WeekdayChartFile  = "daily_spending.csv"
)

var hundred = decimal.NewFromInt(100)

// WriteCharts writes the four chart datasets into dir, creating it if needed,
// and returns the written paths.
func WriteCharts(dir string, res model.AnalysisResult, top int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating charts directory: %w", err)
	}

	charts := []struct {
		name  string
		write func(io.Writer, model.AnalysisResult, int) error
	}{
		{MonthlyChartFile, writeMonthly},
		{CategoryChartFile, writeCategories},
		{MerchantChartFile, writeMerchants},
		{WeekdayChartFile, writeWeekdays},
	}

	var paths []string
	for _, c := range charts {
		path := filepath.Join(dir, c.name)
		if err := writeFile(path, func(w io.Writer) error { return c.write(w, res, top) }); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMonthly(w io.Writer, res model.AnalysisResult, _ int) error {
	rows := make([][]string, 0, len(res.SpendingByMonth))
	for _, m := range res.SpendingByMonth {
		rows = append(rows, []string{m.Month.String(), money(m.Amount)})
	}
	return writeRows(w, []string{"month", "amount_spent"}, rows)
}

// writeCategories includes each category's share of total spend, rounded to one decimal.
func writeCategories(w io.Writer, res model.AnalysisResult, _ int) error {
	total := res.TotalSpent.Abs()
	rows := make([][]string, 0, len(res.SpendingByCategory))
	for _, g := range res.SpendingByCategory {
		share := decimal.Zero
		if !total.IsZero() {
			share = g.Amount.Abs().Div(total).Mul(hundred)
		}
		rows = append(rows, []string{g.Key, money(g.Amount), share.StringFixed(1)})
	}
	return writeRows(w, []string{"category", "amount_spent", "share_pct"}, rows)
}

// writeMerchants orders the top merchants smallest first, matching a horizontal bar chart.
func writeMerchants(w io.Writer, res model.AnalysisResult, top int) error {
	merchants := append([]model.GroupAmount(nil), res.TopMerchants(top)...)
	sort.SliceStable(merchants, func(i, j int) bool {
		return merchants[i].Amount.Abs().LessThan(merchants[j].Amount.Abs())
	})
	rows := make([][]string, 0, len(merchants))
	for _, g := range merchants {
		rows = append(rows, []string{g.Key, money(g.Amount)})
	}
	return writeRows(w, []string{"merchant", "amount_spent"}, rows)
}

func writeWeekdays(w io.Writer, res model.AnalysisResult, _ int) error {
	rows := make([][]string, 0, len(res.SpendingByWeekday))
	for _, d := range res.SpendingByWeekday {
		rows = append(rows, []string{d.Day.String(), d.Amount.StringFixed(2)})
	}
	return writeRows(w, []string{"day_of_week", "amount_spent"}, rows)
}
