package cmd

import (
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		record := make(map[string]interface{})
		for _, key := range config.Keys() {
			record[key] = config.GetString(key)
		}
		output.PrintInfo("Config file: %s", config.GetConfigFilePath())
		return output.PrintRecord("Configuration", record)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetString(args[0], args[1]); err != nil {
			return err
		}
		output.PrintSuccess("%s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
