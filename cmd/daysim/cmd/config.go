package cmd

import (
	"fmt"

	"github.com/rustyeddy/daysim/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "daysim.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Default().SaveToFile(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
