package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "standup",
	Short: "Simulated AI dev-team chat server",
	Long: `Standup runs a chat room with a simulated three-agent software team:
a Scrum Master/PO, a Junior Developer, and a Senior Developer.

Agents take turns responding to your messages. Tag one directly with
@PO, @SCRUM, @SM, @SENIOR, @SR, @JUNIOR, @JR, @DEV, or @ALL to make it
answer first. Task-like messages prompt the junior developer to open a
real pull request on a configured GitHub repository, which the senior
developer then reviews and merges.

With no arguments, starts the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(versionCmd)
}
