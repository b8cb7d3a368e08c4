package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skene",
	Short: "Skene is a scene state machine for voice-assistant skills",
	Long:  `Skene runs intent-driven conversational flows: a quiz skill backed by CSV content, served as a webhook or played locally in the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("content", "content", "Directory containing the content tables")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")
}
