package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"beacon/internal/center"
	"beacon/internal/ipc"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				notifications, err := client.List()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if len(notifications) == 0 {
					fmt.Fprintln(stdout, "No active notifications")
					return nil
				}
				table := renderTable(
					[]string{"UID", "Level", "Title", "Auto-dismiss", "Created"},
					notificationRows(notifications, false),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		statusFlag string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status center.Status
			if statusFlag != "" {
				parsed, ok := center.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("invalid status %q (expected one of %s)", statusFlag, statusNames())
				}
				status = parsed
			}
			return ctx.withClient(func(client *ipc.Client) error {
				notifications, err := client.History(limit)
				if err != nil {
					return err
				}
				if status != "" {
					notifications = filterByStatus(notifications, status)
				}
				stdout := cmd.OutOrStdout()
				if len(notifications) == 0 {
					fmt.Fprintln(stdout, "No notification history")
					return nil
				}
				table := renderTable(
					[]string{"UID", "Level", "Title", "Auto-dismiss", "Created", "Status"},
					notificationRows(notifications, true),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "Only show entries with this status ("+statusNames()+")")
	return cmd
}

func statusNames() string {
	names := make([]string, 0, len(center.AllStatuses()))
	for _, status := range center.AllStatuses() {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

func filterByStatus(notifications []ipc.Notification, status center.Status) []ipc.Notification {
	filtered := notifications[:0]
	for _, notification := range notifications {
		if notification.Status == string(status) {
			filtered = append(filtered, notification)
		}
	}
	return filtered
}

func newClearHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Remove dismissed and expired notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				removed, err := client.ClearHistory()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d notification(s)\n", removed)
				return nil
			})
		},
	}
}
