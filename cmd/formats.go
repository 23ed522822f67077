package cmd

import (
	"fmt"
	"io"
	"strings"

	"datalab/config"
	"datalab/processor"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the source file extensions that have a processor",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return printFormats(cmd.OutOrStdout(), processor.NewFactory(cfg.ProcessorOptions()))
	},
}

func printFormats(w io.Writer, factory *processor.Factory) error {
	var out strings.Builder
	out.WriteString("Supported source formats:\n")
	for _, extension := range factory.Extensions() {
		proc, _ := factory.ProcessorFor("source" + extension)
		fmt.Fprintf(&out, "  %-9s %s\n", extension, processorName(proc))
	}
	_, err := io.WriteString(w, out.String())
	return err
}

func processorName(proc processor.Processor) string {
	name := fmt.Sprintf("%T", proc)
	name = strings.TrimPrefix(name, "*processor.")
	return strings.TrimSuffix(name, "Processor")
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
