package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beacon/internal/ipc"
)

func newHideCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hide <uid>",
		Short: "Dismiss a notification by uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				hidden, err := client.Hide(args[0])
				if err != nil {
					return err
				}
				if hidden {
					fmt.Fprintln(cmd.OutOrStdout(), "Notification dismissed")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No active notification with that uid")
				}
				return nil
			})
		},
	}
}
