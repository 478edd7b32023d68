package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/ipc"
)

func newGalleryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery <pending|liked|hold|noped>",
		Short: "List photos carrying the given status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := strings.ToUpper(strings.TrimSpace(args[0]))
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Gallery(status)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				if len(resp.Photos) == 0 {
					fmt.Fprintf(out, "No photos with status %s\n", status)
					return nil
				}
				fmt.Fprintln(out, renderPhotoTable(resp.Photos))
				return nil
			})
		},
	}
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the seeded photo categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Categories()
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCategoryTable(resp.Categories))
				return nil
			})
		},
	}
}
