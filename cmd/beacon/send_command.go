package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"beacon/internal/ipc"
)

// buildPostRequest maps send flags onto an IPC post request. Split out so the
// flag translation is testable without a daemon.
func buildPostRequest(level, title, action, position string, body []string, timeout time.Duration, timeoutSet, sticky, noDismiss bool) (ipc.PostRequest, error) {
	if sticky && timeoutSet {
		return ipc.PostRequest{}, fmt.Errorf("--sticky and --timeout are mutually exclusive")
	}

	req := ipc.PostRequest{
		Level:    strings.TrimSpace(level),
		Title:    strings.TrimSpace(title),
		Body:     strings.TrimSpace(strings.Join(body, " ")),
		Action:   strings.TrimSpace(action),
		Position: strings.TrimSpace(position),
	}
	if sticky {
		zero := int64(0)
		req.AutoDismissMS = &zero
	} else if timeoutSet {
		ms := timeout.Milliseconds()
		req.AutoDismissMS = &ms
	}
	if noDismiss {
		dismissible := false
		req.Dismissible = &dismissible
	}
	return req, nil
}

func newSendCommand(ctx *commandContext) *cobra.Command {
	var level string
	var title string
	var action string
	var position string
	var timeout time.Duration
	var sticky bool
	var noDismiss bool

	cmd := &cobra.Command{
		Use:   "send [body...]",
		Short: "Post a notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildPostRequest(level, title, action, position, args,
				timeout, cmd.Flags().Changed("timeout"), sticky, noDismiss)
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				uid, err := client.Post(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), uid)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "info", "Notification level (info, success, error)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Notification title")
	cmd.Flags().StringVar(&action, "action", "", "Action hint attached to the notification")
	cmd.Flags().StringVar(&position, "position", "", "Display position (top-left, top-right, bottom-left, bottom-right)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Auto-dismiss delay (for example 5s); overrides the level default")
	cmd.Flags().BoolVar(&sticky, "sticky", false, "Keep the notification until explicitly hidden")
	cmd.Flags().BoolVar(&noDismiss, "no-dismiss", false, "Hide the dismiss control")

	return cmd
}
