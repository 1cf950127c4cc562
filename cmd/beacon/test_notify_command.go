package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beacon/internal/ipc"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				uid, err := client.TestNotification()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Test notification sent (%s)\n", uid)
				return nil
			})
		},
	}
}
