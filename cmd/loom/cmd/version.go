package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the loom version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("loom version %s (built %s)\n", Version, BuildTime)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
