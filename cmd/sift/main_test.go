package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sift/internal/ipc"
)

func TestScanAndPendingCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLibraryPhotos(t, env.cfg, 2)

	out, _, err := runCLI(t, []string{"scan"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Ingested 2 new photos")

	out, _, err = runCLI(t, []string{"pending"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	requireContains(t, out, "PENDING")
	requireContains(t, out, "Nature")

	out, _, err = runCLI(t, []string{"pending", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pending --json: %v", err)
	}
	var resp ipc.PendingResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode pending JSON: %v", err)
	}
	if len(resp.Photos) != 2 {
		t.Fatalf("expected 2 photos in JSON output, got %d", len(resp.Photos))
	}
}

func TestSwipeAndGalleryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLibraryPhotos(t, env.cfg, 1)

	if _, _, err := runCLI(t, []string{"scan"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	out, _, err := runCLI(t, []string{"pending", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pending --json: %v", err)
	}
	var pending ipc.PendingResponse
	if err := json.Unmarshal([]byte(out), &pending); err != nil {
		t.Fatalf("decode pending JSON: %v", err)
	}
	if len(pending.Photos) != 1 {
		t.Fatalf("expected 1 pending photo, got %d", len(pending.Photos))
	}
	photoID := pending.Photos[0].ID

	out, _, err = runCLI(t, []string{"swipe", photoID, "liked"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("swipe liked: %v", err)
	}
	requireContains(t, out, "marked LIKED")

	out, _, err = runCLI(t, []string{"gallery", "liked"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("gallery liked: %v", err)
	}
	requireContains(t, out, photoID)

	_, _, err = runCLI(t, []string{"swipe", photoID, "maybe"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected invalid decision to fail")
	}
	if code := ipc.ErrorCode(err); code != ipc.CodeInvalidArgs {
		t.Fatalf("expected %s, got %q in %v", ipc.CodeInvalidArgs, code, err)
	}
}

func TestNopedSwipeDiscardsPhoto(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLibraryPhotos(t, env.cfg, 1)

	if _, _, err := runCLI(t, []string{"scan"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}
	out, _, err := runCLI(t, []string{"pending", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pending --json: %v", err)
	}
	var pending ipc.PendingResponse
	if err := json.Unmarshal([]byte(out), &pending); err != nil {
		t.Fatalf("decode pending JSON: %v", err)
	}
	photo := pending.Photos[0]

	out, _, err = runCLI(t, []string{"swipe", photo.ID, "noped"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("swipe noped: %v", err)
	}
	requireContains(t, out, "discarded")

	if _, err := os.Stat(photo.URI); !os.IsNotExist(err) {
		t.Fatalf("expected content removed, stat err: %v", err)
	}

	out, _, err = runCLI(t, []string{"pending"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pending after noped: %v", err)
	}
	requireContains(t, out, "No photos waiting for review")
}

func TestCategoriesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"categories"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	requireContains(t, out, "cat_people")
	requireContains(t, out, "People")
	requireContains(t, out, "cat_other")
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Sift Daemon")
	requireContains(t, out, "Daemon:")
	requireContains(t, out, env.cfg.DatabasePath())
}

func TestHealthCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"health"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "Integrity check: yes")
	requireContains(t, out, "photos")
	requireContains(t, out, "Missing tables: none")
}

func TestConfigInitCommand(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	cmd := newRootCommand()
	var stdout strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout.String(), "Wrote sample configuration")

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	requireContains(t, string(content), "library_dirs")

	cmd = newRootCommand()
	cmd.SetOut(&strings.Builder{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}
