// Package main hosts the sift CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC
// calls against the daemon: scan passes, pending-photo review, swipe
// decisions, gallery queries, and database health checks. It centralizes
// configuration resolution and socket discovery so subcommands can focus on
// output rendering.
package main
