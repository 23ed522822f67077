package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage datalab configuration file values.",
	Long: `Create, edit, display, and delete the datalab configuration file.

The configuration stores the processing defaults:
- processing.sources / processing.sort_column
- csv.separator / csv.fallback_separators
- period.column / period.time_suffix
- sqlite.table / excel.sheet
- export.dir / export.format
- log.level`,
	Example: `
  # Create default config in $HOME/.datalab.yaml
  datalab config create

  # Show active config and source file
  datalab config show

  # Open active config in editor (creates example if missing)
  datalab config edit

  # Delete active config file
  datalab config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
