package main

import (
	"fmt"
	"os"

	"github.com/skene-dev/skene/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the skill interactively in the terminal",
	Long:  `Runs the dialog locally with a small keyword classifier standing in for the platform NLU. Useful for trying content changes without a webhook roundtrip.`,
	Run: func(cmd *cobra.Command, args []string) {
		contentDir, _ := cmd.Flags().GetString("content")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		debug, _ := cmd.Flags().GetBool("debug")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		err := cli.RunPlay(cli.PlayOptions{
			ContentDir: contentDir,
			SessionID:  sessionID,
			Fresh:      fresh,
			Debug:      debug,
			NoBanner:   noBanner,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("session", "s", "", "Persist the dialog under this session id")
	playCmd.Flags().Bool("fresh", false, "Discard any persisted state for the session before starting")
	playCmd.Flags().Bool("debug", false, "Log classified intents and engine decisions to stderr")
	playCmd.Flags().Bool("no-banner", false, "Skip the startup banner")
}
