// Package driver runs the processing sequence over a list of sources: pick a
// processor by suffix, load, sort, report, then one period query on the last
// source that was processed successfully.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"datalab/internal/timeutil"
	"datalab/processor"
)

type Options struct {
	// SortColumn is used for every source. When empty, ChooseColumn is asked.
	SortColumn   string
	ChooseColumn func(p processor.Processor) (string, error)
	// Period returns the range for the final period query. ok=false skips it.
	Period func() (period timeutil.Period, ok bool, err error)
	// Export is called after a successful report.
	Export func(p processor.Processor) error
	Out    io.Writer
	Logger *slog.Logger
}

type Result struct {
	Sources    int
	Processed  int
	Skipped    int
	PeriodRan  bool
	PeriodRows int
	// Last is the last successfully processed source, nil if none.
	Last processor.Processor
}

func Run(sources []string, factory *processor.Factory, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	result := &Result{}
	for _, source := range sources {
		result.Sources++
		proc, ok := factory.ProcessorFor(source)
		if !ok {
			logger.Warn("unsupported source", slog.String("source", source), slog.String("supported", strings.Join(factory.Extensions(), ",")))
			result.Skipped++
			continue
		}

		if err := process(proc, out, opts); err != nil {
			logger.Warn("source skipped", slog.String("source", source), slog.String("error", err.Error()))
			result.Skipped++
			continue
		}

		if opts.Export != nil {
			if err := opts.Export(proc); err != nil {
				logger.Warn("export failed", slog.String("source", source), slog.String("error", err.Error()))
			}
		}

		logger.Debug("source processed", slog.String("source", source), slog.Int("rows", proc.Dataset().Nrow()))
		result.Processed++
		result.Last = proc
	}

	runPeriod(result, out, opts, logger)
	return result
}

func process(proc processor.Processor, out io.Writer, opts Options) error {
	if err := proc.Load(); err != nil {
		return err
	}

	column, err := sortColumn(proc, opts)
	if err != nil {
		return err
	}
	if err := proc.Run(column); err != nil {
		return err
	}
	return proc.Report(out)
}

func sortColumn(proc processor.Processor, opts Options) (string, error) {
	if column := strings.TrimSpace(opts.SortColumn); column != "" {
		return column, nil
	}
	if opts.ChooseColumn == nil {
		return "", fmt.Errorf("no sort column configured for %s", proc.Source())
	}
	column, err := opts.ChooseColumn(proc)
	if err != nil {
		return "", fmt.Errorf("choose sort column for %s: %w", proc.Source(), err)
	}
	return column, nil
}

func runPeriod(result *Result, out io.Writer, opts Options, logger *slog.Logger) {
	if opts.Period == nil {
		return
	}
	if result.Last == nil {
		logger.Info("period query skipped, no source was processed")
		return
	}

	period, ok, err := opts.Period()
	if err != nil {
		logger.Warn("period query skipped", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	rows, err := result.Last.StatForPeriod(out, period)
	if err != nil {
		logger.Warn("period query failed", slog.String("source", result.Last.Source()), slog.String("error", err.Error()))
		return
	}
	result.PeriodRan = true
	result.PeriodRows = rows.Nrow()
}
