/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"datalab/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datalab",
	Short: "Load, sort and summarize tabular data files.",
	Long: `
**********************************************
*                DATALAB                     *
**********************************************

This CLI picks a processor by source file extension, loads each source into a
dataset, sorts it by a column and prints the original data, the sorted result and
maximum, minimum and average per column. After all sources, one period query runs
on the last source that was processed successfully.

Supported input formats:
- CSV: .csv (";" separated, "," as fallback)
- Whitespace tables: .txt
- Excel: .xlsx, .xlsm
- Parquet: .parquet
- SQLite: .sqlite, .db
`,
	Example: `
  # Create configuration file
  datalab config create

  # Process the configured sources, asking for a sort column per source
  datalab run

  # Sort two sources by datetime and query one day
  datalab run -i temperature.csv -i humidity.csv --sort datetime --from "2023-01-03 00" --to "2023-01-04 00"

  # Export sorted results and summaries as Excel workbooks
  datalab run -i readings.parquet --sort pressure --export-dir ./out --export-format excel

  # Query a period on a single source
  datalab period -i wind_speed.csv --from "2023-01-03 00" --to "2023-01-03 12"

  # List supported source formats
  datalab formats
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(resolveLogLevel(logLevel, viper.GetString(config.KeyLogLevel)), os.Stderr)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.datalab.yaml, then ./.datalab.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error (default from log.level)")
}

func resolveLogLevel(flagValue, configValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if strings.TrimSpace(configValue) != "" {
		return configValue
	}
	return config.DefaultLogLevel
}

func setupLogging(level string, w io.Writer) error {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("invalid log level %q (supported: debug|info|warn|error)", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parsed})))
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".datalab" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".datalab")
	}

	viper.SetEnvPrefix("datalab")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: datalab config create")
	}
}
