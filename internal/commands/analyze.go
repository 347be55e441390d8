package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/internal/report"
)

const previewRows = 5

func newAnalyzeCommand(opts *globalOptions) *cobra.Command {
	var top int
	var charts bool
	var chartsDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the full spending report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				s.cfg.Report.TopMerchants = top
				if err := s.cfg.Validate(); err != nil {
					return err
				}
			}
			if chartsDir != "" {
				s.cfg.Report.ChartsDir = chartsDir
			}

			txns, rep, err := s.analyze(cmd.Context())
			if err != nil {
				return err
			}

			if verbose {
				s.presenter.Preview(txns, previewRows)
			}
			s.presenter.Full(rep, s.cfg.Report.TopMerchants)

			if !charts {
				return nil
			}
			if _, err := report.WriteCharts(s.cfg.Report.ChartsDir, rep.Summary, s.cfg.Report.TopMerchants); err != nil {
				return fmt.Errorf("writing charts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nChart data saved to the '%s' directory.\n", s.cfg.Report.ChartsDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "number of merchants to list")
	cmd.Flags().BoolVar(&charts, "charts", false, "write chart datasets as CSV")
	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "directory for chart datasets (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "preview the first normalized transactions")

	return cmd
}

func newSubscriptionsCommand(opts *globalOptions) *cobra.Command {
	var irregular bool

	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List recurring payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if irregular {
				s.cfg.Recurring.ReportIrregular = true
			}

			_, rep, err := s.analyze(cmd.Context())
			if err != nil {
				return err
			}
			s.presenter.Currency()
			s.presenter.Recurring(rep.Recurring)
			return nil
		},
	}

	cmd.Flags().BoolVar(&irregular, "irregular", false, "also list recurring merchants with irregular timing")

	return cmd
}

func newAnomaliesCommand(opts *globalOptions) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "List transactions with unusual amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				s.cfg.Anomaly.ZScoreThreshold = threshold
				if err := s.cfg.Validate(); err != nil {
					return err
				}
			}

			_, rep, err := s.analyze(cmd.Context())
			if err != nil {
				return err
			}
			s.presenter.Currency()
			s.presenter.Anomalies(rep.Anomalies)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 2, "z-score above which a transaction is flagged")

	return cmd
}

func newTrendCommand(opts *globalOptions) *cobra.Command {
	var skip int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show month-over-month spending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("skip") {
				s.cfg.Trend.SkipLeadingMonths = skip
				if err := s.cfg.Validate(); err != nil {
					return err
				}
			}

			_, rep, err := s.analyze(cmd.Context())
			if err != nil {
				return err
			}
			s.presenter.Currency()
			s.presenter.Trend(rep.Trend)
			return nil
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "drop this many earliest months before computing changes")

	return cmd
}

func newCategoriesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			s.presenter.Categories(s.catalog.All(), s.catalog.Tags())
			return nil
		},
	}
}
