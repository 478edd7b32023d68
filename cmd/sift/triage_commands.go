package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/ipc"
)

func newPendingCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List undecided photos, newest capture first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Pending(limit)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				if len(resp.Photos) == 0 {
					fmt.Fprintln(out, "No photos waiting for review")
					return nil
				}
				fmt.Fprintln(out, renderPhotoTable(resp.Photos))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum photos to return (0 uses the configured limit)")
	return cmd
}

func newSwipeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swipe <photo-id> <liked|hold|noped>",
		Short: "Record a triage decision for a photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			photoID := strings.TrimSpace(args[0])
			decision := strings.ToUpper(strings.TrimSpace(args[1]))
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Swipe(photoID, decision)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				switch decision {
				case "NOPED":
					fmt.Fprintf(cmd.OutOrStdout(), "Photo %s discarded\n", photoID)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Photo %s marked %s\n", photoID, decision)
				}
				return nil
			})
		},
	}
	return cmd
}
