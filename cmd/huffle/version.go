package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "View huffle's version",
	Long:  "Display the version of the huffle tool.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("huffle version 1.0.0")
		return nil
	},
}
