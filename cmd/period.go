package cmd

import (
	"fmt"
	"log/slog"

	"datalab/config"
	"datalab/internal/console"
	"datalab/processor"

	"github.com/spf13/cobra"
)

var (
	periodInput string
	periodFrom  string
	periodTo    string
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Print the rows of one source that fall into a time period",
	Long: `Load a single source and print the rows whose period.column value lies between
start and end, both inclusive. Start and end are given as "YYYY-MM-DD HH"; when --from
and --to are omitted they are asked for interactively.`,
	Example: `
  # Rows of one day
  datalab period -i temperature.csv --from "2023-01-03 00" --to "2023-01-03 23"

  # Ask for start and end
  datalab period -i weather.sqlite
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		factory := processor.NewFactory(cfg.ProcessorOptions())
		proc, ok := factory.ProcessorFor(periodInput)
		if !ok {
			return fmt.Errorf("unsupported source %s (supported: %v)", periodInput, factory.Extensions())
		}
		if err := proc.Load(); err != nil {
			return err
		}

		prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Period.TimeSuffix)
		source, err := resolvePeriodSource(periodFrom, periodTo, true, cfg.Period.TimeSuffix, prompter)
		if err != nil {
			return err
		}
		period, ok, err := source()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No period given.")
			return nil
		}

		rows, err := proc.StatForPeriod(cmd.OutOrStdout(), period)
		if err != nil {
			return err
		}
		slog.Debug("period query completed", slog.String("source", periodInput), slog.Int("rows", rows.Nrow()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(periodCmd)

	periodCmd.Flags().StringVarP(&periodInput, "input", "i", "", "Source file path")
	periodCmd.Flags().StringVar(&periodFrom, "from", "", `Period start "YYYY-MM-DD HH"`)
	periodCmd.Flags().StringVar(&periodTo, "to", "", `Period end "YYYY-MM-DD HH"`)

	_ = periodCmd.MarkFlagRequired("input")
}
