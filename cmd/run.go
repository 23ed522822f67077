package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"datalab/config"
	"datalab/driver"
	"datalab/internal/console"
	"datalab/internal/timeutil"
	"datalab/output"
	"datalab/processor"

	"github.com/spf13/cobra"
)

var (
	runInputs       []string
	runSortColumn   string
	runFrom         string
	runTo           string
	runPromptPeriod bool
	runExportDir    string
	runExportFormat string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load, sort and summarize each source, then query a period on the last one",
	Long: `Process every source in order: pick a processor by file extension, load the
dataset, sort it ascending by a column and print the dataset, the sorted result and
maximum, minimum and average per column.

Sources with an unsupported extension and sources that fail to load are reported and
skipped. After all sources, one period query runs on the last source that was processed
successfully. The period comes from --from/--to, or is asked for with --prompt-period.

When neither --sort nor processing.sort_column is set, the sort column is asked for
per source.`,
	Example: `
  # Process the sources from configuration
  datalab run

  # Process explicit sources sorted by temperature
  datalab run -i temperature.csv -i seeds.txt --sort temperature

  # Query a period on the last processed source
  datalab run -i humidity.csv --sort humidity --from "2023-01-03 00" --to "2023-01-03 23"

  # Ask for the period interactively
  datalab run -i pressure.csv --sort datetime --prompt-period

  # Export sorted results and summaries
  datalab run -i weather.sqlite --sort wind_speed --export-dir ./out --export-format excel
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		sources := runInputs
		if len(sources) == 0 {
			sources = cfg.Processing.Sources
		}
		if len(sources) == 0 {
			return fmt.Errorf("no sources given (use --input or processing.sources)")
		}

		prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Period.TimeSuffix)
		period, err := resolvePeriodSource(runFrom, runTo, runPromptPeriod, cfg.Period.TimeSuffix, prompter)
		if err != nil {
			return err
		}

		export, err := newExporter(
			firstNonEmpty(runExportDir, cfg.Export.Dir),
			firstNonEmpty(runExportFormat, cfg.Export.Format),
		)
		if err != nil {
			return err
		}

		result := driver.Run(sources, processor.NewFactory(cfg.ProcessorOptions()), driver.Options{
			SortColumn:   firstNonEmpty(runSortColumn, cfg.Processing.SortColumn),
			ChooseColumn: prompter.Column,
			Period:       period,
			Export:       export,
			Out:          cmd.OutOrStdout(),
			Logger:       slog.Default(),
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Run completed. Sources: %d, Processed: %d, Skipped: %d\n",
			result.Sources,
			result.Processed,
			result.Skipped,
		)
		if result.PeriodRan {
			fmt.Fprintf(cmd.OutOrStdout(), "Period query on %s: %d rows\n", result.Last.Source(), result.PeriodRows)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Source file path (repeatable, default from processing.sources)")
	runCmd.Flags().StringVarP(&runSortColumn, "sort", "s", "", "Sort column for every source (asked per source when empty)")
	runCmd.Flags().StringVar(&runFrom, "from", "", `Period start "YYYY-MM-DD HH"`)
	runCmd.Flags().StringVar(&runTo, "to", "", `Period end "YYYY-MM-DD HH"`)
	runCmd.Flags().BoolVar(&runPromptPeriod, "prompt-period", false, "Ask for the period after all sources are processed")
	runCmd.Flags().StringVar(&runExportDir, "export-dir", "", "Directory for sorted results and summaries (default from export.dir, empty disables export)")
	runCmd.Flags().StringVar(&runExportFormat, "export-format", "", "Export format: csv|excel (default from export.format)")
}

type periodSource func() (timeutil.Period, bool, error)

// resolvePeriodSource returns nil when no period query was requested.
func resolvePeriodSource(from, to string, prompt bool, suffix string, prompter *console.Prompter) (periodSource, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" && to == "" {
		if prompt && prompter != nil {
			return prompter.Period, nil
		}
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("both --from and --to are required for a period query")
	}

	period, err := timeutil.ParsePeriodInput(from, to, suffix)
	if err != nil {
		return nil, err
	}
	return func() (timeutil.Period, bool, error) {
		return period, true, nil
	}, nil
}

// newExporter returns nil when dir is empty.
func newExporter(dir, format string) (func(processor.Processor) error, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory %s: %w", dir, err)
	}

	return func(proc processor.Processor) error {
		resultPath, err := output.ResultPath(dir, proc.Source(), format)
		if err != nil {
			return err
		}
		if err := writer.Write(resultPath, proc.Result()); err != nil {
			return err
		}

		summaryPath, err := output.SummaryPath(dir, proc.Source(), format)
		if err != nil {
			return err
		}
		if err := output.WriteSummary(summaryPath, format, processor.Summarize(proc.Result())); err != nil {
			return err
		}

		slog.Info("result exported", slog.String("source", proc.Source()), slog.String("result", resultPath), slog.String("summary", summaryPath))
		return nil
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
