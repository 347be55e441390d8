package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spendscope/spendscope/internal/analysis"
)

// FileName is the default config file name.
const FileName = "spendscope.yaml"

// Environment variables that override the config file.
const (
	EnvTransactionsFile = "TRANSACTIONS_FILE"
	EnvCategoriesFile   = "CATEGORIES_FILE"
	EnvCurrency         = "SPENDSCOPE_CURRENCY"
	EnvLogLevel         = "SPENDSCOPE_LOG_LEVEL"
)

// Config represents the top-level spendscope.yaml configuration.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Report    ReportConfig    `yaml:"report"`
	Recurring RecurringConfig `yaml:"recurring"`
	Anomaly   AnomalyConfig   `yaml:"anomaly"`
	Trend     TrendConfig     `yaml:"trend"`
	Log       LogConfig       `yaml:"log"`
}

// SourcesConfig locates the input documents.
type SourcesConfig struct {
	TransactionsFile string `yaml:"transactions_file"`
	CategoriesFile   string `yaml:"categories_file"`
	Format           string `yaml:"format,omitempty"` // json, csv, or empty to use the file extension
}

// ReportConfig controls report output.
type ReportConfig struct {
	Currency     string `yaml:"currency"` // label only, amounts are never converted
	TopMerchants int    `yaml:"top_merchants"`
	ChartsDir    string `yaml:"charts_dir"`
}

// RecurringConfig holds the subscription detector thresholds.
type RecurringConfig struct {
	MinOccurrences  int     `yaml:"min_occurrences"`
	MaxAmountCV     float64 `yaml:"max_amount_cv"`
	MaxDayStd       float64 `yaml:"max_day_std"`
	MinMonths       int     `yaml:"min_months"`
	ReportIrregular bool    `yaml:"report_irregular"`
}

// AnomalyConfig holds the anomaly detector threshold.
type AnomalyConfig struct {
	ZScoreThreshold float64 `yaml:"zscore_threshold"`
}

// TrendConfig controls the month-over-month series.
type TrendConfig struct {
	SkipLeadingMonths int `yaml:"skip_leading_months"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a spendscope.yaml file from disk. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard thresholds.
func Default() *Config {
	rc := analysis.DefaultRecurringConfig()
	return &Config{
		Sources: SourcesConfig{
			TransactionsFile: "transactions.json",
			CategoriesFile:   "categories.json",
		},
		Report: ReportConfig{
			Currency:     "SEK",
			TopMerchants: 10,
			ChartsDir:    "finance_charts",
		},
		Recurring: RecurringConfig{
			MinOccurrences:  rc.MinOccurrences,
			MaxAmountCV:     rc.MaxAmountCV,
			MaxDayStd:       rc.MaxDayStd,
			MinMonths:       rc.MinMonths,
			ReportIrregular: rc.ReportIrregular,
		},
		Anomaly: AnomalyConfig{
			ZScoreThreshold: analysis.DefaultAnomalyThreshold,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTransactionsFile); v != "" {
		c.Sources.TransactionsFile = v
	}
	if v := os.Getenv(EnvCategoriesFile); v != "" {
		c.Sources.CategoriesFile = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Report.Currency = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Sources.TransactionsFile == "" {
		errs = append(errs, "sources.transactions_file is required")
	}
	if c.Sources.CategoriesFile == "" {
		errs = append(errs, "sources.categories_file is required")
	}
	switch strings.ToLower(c.Sources.Format) {
	case "", "json", "csv":
	default:
		errs = append(errs, fmt.Sprintf("sources.format %q: must be json or csv", c.Sources.Format))
	}
	if c.Report.TopMerchants < 1 {
		errs = append(errs, fmt.Sprintf("report.top_merchants %d: must be at least 1", c.Report.TopMerchants))
	}
	if c.Recurring.MinOccurrences < 2 {
		errs = append(errs, fmt.Sprintf("recurring.min_occurrences %d: must be at least 2", c.Recurring.MinOccurrences))
	}
	if c.Recurring.MaxAmountCV <= 0 {
		errs = append(errs, fmt.Sprintf("recurring.max_amount_cv %g: must be positive", c.Recurring.MaxAmountCV))
	}
	if c.Recurring.MaxDayStd <= 0 {
		errs = append(errs, fmt.Sprintf("recurring.max_day_std %g: must be positive", c.Recurring.MaxDayStd))
	}
	if c.Recurring.MinMonths < 1 {
		errs = append(errs, fmt.Sprintf("recurring.min_months %d: must be at least 1", c.Recurring.MinMonths))
	}
	if c.Anomaly.ZScoreThreshold <= 0 {
		errs = append(errs, fmt.Sprintf("anomaly.zscore_threshold %g: must be positive", c.Anomaly.ZScoreThreshold))
	}
	if c.Trend.SkipLeadingMonths < 0 {
		errs = append(errs, fmt.Sprintf("trend.skip_leading_months %d: must not be negative", c.Trend.SkipLeadingMonths))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// AnalysisOptions converts the config into analyzer options.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Recurring: analysis.RecurringConfig{
			MinOccurrences:  c.Recurring.MinOccurrences,
			MaxAmountCV:     c.Recurring.MaxAmountCV,
			MaxDayStd:       c.Recurring.MaxDayStd,
			MinMonths:       c.Recurring.MinMonths,
			ReportIrregular: c.Recurring.ReportIrregular,
		},
		AnomalyThreshold:  c.Anomaly.ZScoreThreshold,
		SkipLeadingMonths: c.Trend.SkipLeadingMonths,
	}
}
