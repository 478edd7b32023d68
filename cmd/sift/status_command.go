package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"sift/internal/gallery"
	"sift/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and photo counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Sift Daemon", colorize) {
					fmt.Fprintln(out, line)
				}
				runningKind := statusError
				runningMsg := "stopped"
				if resp.Running {
					runningKind = statusOK
					runningMsg = fmt.Sprintf("pid %d", resp.PID)
				}
				fmt.Fprintln(out, renderStatusLine("Daemon", runningKind, runningMsg, colorize))
				fmt.Fprintln(out, renderStatusLine("Database", statusInfo, resp.DBPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Lock file", statusInfo, resp.LockPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Library dirs", statusInfo, strings.Join(resp.LibraryDirs, ", "), colorize))

				if len(resp.PhotoStats) > 0 {
					for _, line := range renderSectionHeader("Photos", colorize) {
						fmt.Fprintln(out, line)
					}
					for _, status := range orderedStatuses(resp.PhotoStats) {
						fmt.Fprintln(out, renderStatusLine(status, statusInfo,
							fmt.Sprintf("%d", resp.PhotoStats[status]), colorize))
					}
				}
				return nil
			})
		},
	}
}

// orderedStatuses lists known statuses in lifecycle order, then any
// unexpected keys alphabetically.
func orderedStatuses(stats map[string]int) []string {
	ordered := make([]string, 0, len(stats))
	seen := make(map[string]struct{}, len(stats))
	for _, status := range gallery.AllStatuses() {
		if _, ok := stats[string(status)]; ok {
			ordered = append(ordered, string(status))
			seen[string(status)] = struct{}{}
		}
	}
	var extra []string
	for status := range stats {
		if _, ok := seen[status]; !ok {
			extra = append(extra, status)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, resp)
				}
				if resp.Stopped {
					fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopping")
				}
				return nil
			})
		},
	}
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
