package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the daysim version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daysim %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
