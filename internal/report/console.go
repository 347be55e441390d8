// Package report renders analysis results for people: console text and the
// chart datasets consumed by plotting tools.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/spendscope/spendscope/internal/analysis"
	"github.com/spendscope/spendscope/internal/model"
)

const dateFormat = "2006-01-02"

// Presenter writes console reports.
type Presenter struct {
	w        io.Writer
	currency string
	header   *color.Color
	warn     *color.Color
}

// NewPresenter creates a Presenter writing to w. Colors are also disabled
// automatically when stdout is not a terminal.
func NewPresenter(w io.Writer, currency string, noColor bool) *Presenter {
	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)
	if noColor {
		header.DisableColor()
		warn.DisableColor()
	}
	return &Presenter{w: w, currency: currency, header: header, warn: warn}
}

func (p *Presenter) section(title string) {
	fmt.Fprintln(p.w)
	p.header.Fprintf(p.w, "--- %s ---", title)
	fmt.Fprintln(p.w)
}

// Currency prints the reporting currency label.
func (p *Presenter) Currency() {
	fmt.Fprintf(p.w, "Currency: %s\n", p.currency)
}

// Full prints every section of an analysis report.
func (p *Presenter) Full(r *analysis.Report, top int) {
	p.Currency()
	p.Summary(r.Summary, top)
	p.Recurring(r.Recurring)
	p.Anomalies(r.Anomalies)
	p.Trend(r.Trend)
}

// Summary prints totals and the grouped spending views. Amounts are shown as magnitudes.
func (p *Presenter) Summary(res model.AnalysisResult, top int) {
	p.section("Basic Statistics")
	fmt.Fprintf(p.w, "Total spent: %s\n", money(res.TotalSpent))
	fmt.Fprintf(p.w, "Total income: %s\n", res.TotalIncome.StringFixed(2))
	fmt.Fprintf(p.w, "Net change: %s\n", res.NetChange.StringFixed(2))

	p.section("Spending by Category")
	for _, g := range res.SpendingByCategory {
		fmt.Fprintf(p.w, "%s: %s\n", g.Key, money(g.Amount))
	}

	p.section("Monthly Spending")
	for _, m := range res.SpendingByMonth {
		fmt.Fprintf(p.w, "%s: %s\n", m.Month, money(m.Amount))
	}

	merchants := res.TopMerchants(top)
	p.section(fmt.Sprintf("Top %d Merchants by Spending", len(merchants)))
	for _, g := range merchants {
		fmt.Fprintf(p.w, "%s: %s\n", displayMerchant(g.Key), money(g.Amount))
	}

	p.section("Spending by Day of Week")
	for _, d := range res.SpendingByWeekday {
		fmt.Fprintf(p.w, "%s: %s\n", d.Day, d.Amount.StringFixed(2))
	}
}

// Recurring prints likely subscriptions and, when present, irregular recurring merchants.
func (p *Presenter) Recurring(res model.RecurringPaymentResult) {
	p.section("Potential Subscriptions")
	if len(res.Subscriptions) == 0 {
		fmt.Fprintln(p.w, "No recurring payments detected.")
	}
	for _, s := range res.Subscriptions {
		fmt.Fprintf(p.w, "%s: %s %s, %d payments, around day %d of the month\n",
			displayMerchant(s.Merchant), s.Amount.StringFixed(2), p.currency, s.Frequency, s.Day)
	}

	if len(res.Irregular) == 0 {
		return
	}
	p.section("Recurring but Irregular")
	for _, s := range res.Irregular {
		fmt.Fprintf(p.w, "%s: %s %s, %d payments, day spread %.1f over %d months\n",
			displayMerchant(s.Merchant), s.Amount.StringFixed(2), p.currency, s.Frequency,
			s.Profile.DayStd, s.Profile.DistinctMonths)
	}
}

// Anomalies prints flagged transactions.
func (p *Presenter) Anomalies(res model.AnomalyResult) {
	p.section("Unusual Transactions")
	if len(res.Flagged) == 0 {
		fmt.Fprintf(p.w, "No transactions beyond %.1f standard deviations.\n", res.Threshold)
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMERCHANT\tAMOUNT\tCATEGORY\tZ")
	for _, f := range res.Flagged {
		t := f.Transaction
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n",
			formatDate(t.EntryTime), displayMerchant(t.MerchantName), t.Amount.StringFixed(2), t.CategoryName, f.ZScore)
	}
	tw.Flush()
}

// Trend prints the month-over-month spending series.
func (p *Presenter) Trend(res model.TrendResult) {
	p.section("Monthly Spending Trend")
	if len(res.Points) == 0 {
		fmt.Fprintln(p.w, "Not enough months for a trend.")
		return
	}
	for _, pt := range res.Points {
		line := fmt.Sprintf("%s: %s %s (%s of %.1f%%)\n",
			pt.Month, pt.Spend.StringFixed(2), p.currency, pt.Direction, math.Abs(pt.PctChange))
		if pt.Direction == model.TrendIncrease {
			p.warn.Fprint(p.w, line)
			continue
		}
		fmt.Fprint(p.w, line)
	}
}

// Preview prints the first n normalized transactions.
func (p *Presenter) Preview(txns []model.Transaction, n int) {
	if n > len(txns) {
		n = len(txns)
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTRY\tVALUE\tAMOUNT\tMERCHANT\tCATEGORY")
	for _, t := range txns[:n] {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			formatDate(t.EntryTime), formatDate(t.ValueTime), t.Amount.StringFixed(2), t.MerchantName, t.CategoryName)
	}
	tw.Flush()
	if len(txns) > n {
		fmt.Fprintf(p.w, "... %d more\n", len(txns)-n)
	}
}

// Categories prints the category catalog and its tags.
func (p *Presenter) Categories(categories []model.Category, tags []string) {
	p.section("Categories")
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	tw.Flush()

	if len(tags) > 0 {
		p.section("Tags")
		for _, t := range tags {
			fmt.Fprintln(p.w, t)
		}
	}
}

func money(d decimal.Decimal) string {
	return d.Abs().StringFixed(2)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}

func displayMerchant(name string) string {
	if name == "" {
		return "(no merchant)"
	}
	return name
}

