package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/internal/analysis"
	"github.com/spendscope/spendscope/internal/catalog"
	"github.com/spendscope/spendscope/internal/config"
	"github.com/spendscope/spendscope/internal/importer"
	"github.com/spendscope/spendscope/internal/logging"
	"github.com/spendscope/spendscope/internal/model"
	"github.com/spendscope/spendscope/internal/normalize"
	"github.com/spendscope/spendscope/internal/report"
)

// globalOptions are the flags shared by every data command.
type globalOptions struct {
	configPath   string
	envFile      string
	transactions string
	categories   string
	format       string
	currency     string
	logLevel     string
	logFormat    string
	noColor      bool
}

func (o *globalOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	f.StringVar(&o.envFile, "env-file", ".env", "dotenv file with environment overrides")
	f.StringVar(&o.transactions, "transactions", "", "transaction export file")
	f.StringVar(&o.categories, "categories", "", "category catalog file")
	f.StringVar(&o.format, "format", "", "transaction file format: json or csv (default from extension)")
	f.StringVar(&o.currency, "currency", "", "currency label for reports")
	f.StringVar(&o.logLevel, "log-level", "", "log level (default warn)")
	f.StringVar(&o.logFormat, "log-format", "", "log format: text or json")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
}

// loadConfig resolves settings in order: config file, .env, environment, flags.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" {
		path = config.FileName
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
		resolveSources(cfg, filepath.Dir(path))
	case errors.Is(err, os.ErrNotExist) && o.configPath == "":
	default:
		return nil, err
	}

	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if o.transactions != "" {
		cfg.Sources.TransactionsFile = o.transactions
	}
	if o.categories != "" {
		cfg.Sources.CategoriesFile = o.categories
	}
	if o.format != "" {
		cfg.Sources.Format = o.format
	}
	if o.currency != "" {
		cfg.Report.Currency = o.currency
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSources makes relative source paths from a config file relative to its directory.
func resolveSources(cfg *config.Config, dir string) {
	for _, p := range []*string{&cfg.Sources.TransactionsFile, &cfg.Sources.CategoriesFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// session is the loaded state shared by the data commands.
type session struct {
	cfg       *config.Config
	run       *logging.RunData
	catalog   *catalog.Catalog
	presenter *report.Presenter
}

func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	run := logging.NewRunData(logger)
	run.AddData("command", cmd.Name())

	cat, err := catalog.Load(cfg.Sources.CategoriesFile)
	if err != nil {
		return nil, err
	}
	run.Entry().WithField("categories", cat.Len()).Debug("Catalog.Loaded")

	return &session{
		cfg:       cfg,
		run:       run,
		catalog:   cat,
		presenter: report.NewPresenter(cmd.OutOrStdout(), cfg.Report.Currency, o.noColor),
	}, nil
}

// transactions loads and normalizes the transaction export.
func (s *session) transactions() ([]model.Transaction, error) {
	defer s.run.AddTiming("load")()

	records, err := importer.DefaultRegistry().Load(s.cfg.Sources.TransactionsFile, s.cfg.Sources.Format)
	if err != nil {
		return nil, err
	}

	txns, stats := normalize.New(s.catalog).Normalize(records)
	s.run.AddData("records", stats.Records)

	entry := s.run.Entry().WithFields(logrus.Fields{
		"records":            stats.Records,
		"invalid_timestamps": stats.InvalidTimestamps,
		"invalid_amounts":    stats.InvalidAmounts,
		"unknown_categories": stats.UnknownCategories,
	})
	if stats.InvalidTimestamps+stats.InvalidAmounts+stats.UnknownCategories > 0 {
		entry.Warn("Normalize.Degraded")
	} else {
		entry.Debug("Normalize.Complete")
	}
	return txns, nil
}

// analyze loads the transactions and runs every analysis over them.
func (s *session) analyze(ctx context.Context) ([]model.Transaction, *analysis.Report, error) {
	txns, err := s.transactions()
	if err != nil {
		return nil, nil, err
	}

	rep, err := analysis.New(s.cfg.AnalysisOptions(), s.run).Run(ctx, txns)
	if err != nil {
		return nil, nil, fmt.Errorf("analyzing transactions: %w", err)
	}

	s.run.AddData("subscriptions", len(rep.Recurring.Subscriptions))
	s.run.AddData("anomalies", len(rep.Anomalies.Flagged))
	s.run.Log().Info("Analysis.Complete")
	return txns, rep, nil
}
