package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/standuplabs/standup/internal/tui"
)

var chatServerURL string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open a terminal chat client",
	Long: `Connect to a running standup server and chat with the team.

Commands inside the chat:
  /toggle <agent> on|off   activate or deactivate an agent
  /role <agent> <name>     rename an agent's display role
  /agents                  refresh the roster
  /quit                    leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := tui.Dial(chatServerURL)
		if err != nil {
			return fmt.Errorf("connecting to server: %w", err)
		}
		return tui.Run(conn)
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatServerURL, "server", "ws://localhost:8080/ws", "Server websocket URL")
}
