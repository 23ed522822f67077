package cmd

import (
	"fmt"
	"io"

	"datalab/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Defaults are shown
for keys that the file does not set.`,
	Example: `
  # Show active configuration
  datalab config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return showConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
	},
}

func showConfig(w io.Writer, configPath string, cfg *config.Config) error {
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if configPath != "" {
		fmt.Fprintln(w, "Config file loaded from:", configPath)
	} else {
		fmt.Fprintln(w, "No config file loaded, showing defaults.")
	}
	fmt.Fprintln(w, "Configuration:")
	_, err = w.Write(content)
	return err
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
