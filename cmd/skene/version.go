package main

import (
	"fmt"
	"strings"

	"github.com/skene-dev/skene"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skene",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skene version %s\n", strings.TrimSpace(skene.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
