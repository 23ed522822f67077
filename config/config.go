package config

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"datalab/internal/timeutil"
	"datalab/processor"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeySources            = "processing.sources"
	KeySortColumn         = "processing.sort_column"
	KeyCSVSeparator       = "csv.separator"
	KeyCSVFallback        = "csv.fallback_separators"
	KeyPeriodColumn       = "period.column"
	KeyPeriodTimeSuffix   = "period.time_suffix"
	KeySQLiteTable        = "sqlite.table"
	KeyExcelSheet         = "excel.sheet"
	KeyExportDir          = "export.dir"
	KeyExportFormat       = "export.format"
	KeyLogLevel           = "log.level"
	DefaultPeriodSuffix   = ":00:00"
	DefaultExportFormat   = "csv"
	DefaultLogLevel       = "info"
	DefaultSQLiteTable    = "dataset"
	DefaultPeriodColumn   = "datetime"
	DefaultCSVSeparator   = ";"
	DefaultCSVFallbackSep = ","
)

// DefaultSources are processed when neither flags nor config name any source.
var DefaultSources = []string{
	"temperature.csv",
	"humidity.csv",
	"pressure.csv",
	"wind_direction.csv",
	"wind_speed.csv",
}

type Config struct {
	Processing ProcessingConfig `mapstructure:"processing" yaml:"processing"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Period     PeriodConfig     `mapstructure:"period" yaml:"period"`
	SQLite     SQLiteConfig     `mapstructure:"sqlite" yaml:"sqlite"`
	Excel      ExcelConfig      `mapstructure:"excel" yaml:"excel"`
	Export     ExportConfig     `mapstructure:"export" yaml:"export"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

type ProcessingConfig struct {
	Sources    []string `mapstructure:"sources" yaml:"sources" validate:"dive,required"`
	SortColumn string   `mapstructure:"sort_column" yaml:"sort_column"`
}

type CSVConfig struct {
	Separator          string   `mapstructure:"separator" yaml:"separator" validate:"required,len=1"`
	FallbackSeparators []string `mapstructure:"fallback_separators" yaml:"fallback_separators" validate:"dive,len=1"`
}

type PeriodConfig struct {
	Column     string `mapstructure:"column" yaml:"column" validate:"required"`
	TimeSuffix string `mapstructure:"time_suffix" yaml:"time_suffix"`
}

type SQLiteConfig struct {
	Table string `mapstructure:"table" yaml:"table" validate:"required"`
}

type ExcelConfig struct {
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=csv excel xlsx"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# datalab configuration
processing:
  sources:
    - temperature.csv
    - humidity.csv
    - pressure.csv
    - wind_direction.csv
    - wind_speed.csv
  # empty: ask for the sort column of every source
  sort_column: ""

csv:
  separator: ";"
  fallback_separators: [","]

period:
  column: "datetime"
  time_suffix: ":00:00"

sqlite:
  table: "dataset"

excel:
  sheet: ""

export:
  dir: ""
  format: "csv"

log:
  level: "info"
`
}

// ProcessorOptions converts the loading settings for the processor factory.
func (c *Config) ProcessorOptions() processor.Options {
	opts := processor.DefaultOptions()
	if r, _ := utf8.DecodeRuneInString(c.CSV.Separator); r != utf8.RuneError {
		opts.Separator = r
	}
	opts.FallbackSeparators = make([]rune, 0, len(c.CSV.FallbackSeparators))
	for _, sep := range c.CSV.FallbackSeparators {
		if r, _ := utf8.DecodeRuneInString(sep); r != utf8.RuneError {
			opts.FallbackSeparators = append(opts.FallbackSeparators, r)
		}
	}
	if column := strings.TrimSpace(c.Period.Column); column != "" {
		opts.PeriodColumn = column
	}
	if table := strings.TrimSpace(c.SQLite.Table); table != "" {
		opts.SQLiteTable = table
	}
	opts.ExcelSheet = strings.TrimSpace(c.Excel.Sheet)
	return opts
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSeparators(cfg.CSV); err != nil {
		return nil, err
	}
	if err := validateTimeSuffix(cfg.Period.TimeSuffix); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySources, DefaultSources)
	v.SetDefault(KeySortColumn, "")
	v.SetDefault(KeyCSVSeparator, DefaultCSVSeparator)
	v.SetDefault(KeyCSVFallback, []string{DefaultCSVFallbackSep})
	v.SetDefault(KeyPeriodColumn, DefaultPeriodColumn)
	v.SetDefault(KeyPeriodTimeSuffix, DefaultPeriodSuffix)
	v.SetDefault(KeySQLiteTable, DefaultSQLiteTable)
	v.SetDefault(KeyExcelSheet, "")
	v.SetDefault(KeyExportDir, "")
	v.SetDefault(KeyExportFormat, DefaultExportFormat)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

func validateSeparators(cfg CSVConfig) error {
	all := append([]string{cfg.Separator}, cfg.FallbackSeparators...)
	for i, sep := range all {
		switch sep {
		case "\"", "\n", "\r":
			if i == 0 {
				return fmt.Errorf("validation failed: csv.separator %q is not allowed", sep)
			}
			return fmt.Errorf("validation failed: csv.fallback_separators[%d] %q is not allowed", i-1, sep)
		}
	}
	return nil
}

// validateTimeSuffix checks that "YYYY-MM-DD HH" plus the suffix is a full
// timestamp, so period prompts can be parsed.
func validateTimeSuffix(suffix string) error {
	if _, err := timeutil.ParseHourInput("2006-01-02 15", suffix); err != nil {
		return fmt.Errorf("validation failed: period.time_suffix %q does not complete \"YYYY-MM-DD HH\" to %q", suffix, timeutil.DefaultLayout)
	}
	return nil
}
