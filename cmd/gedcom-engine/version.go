package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gedcom-engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gedcom-engine %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
