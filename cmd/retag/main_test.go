package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"retag/internal/pipeline"
)

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExitCodeClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "success", err: nil, code: 0},
		{name: "abort", err: pipeline.ErrAborted, code: 2, message: "Import aborted."},
		{name: "wrapped abort", err: fmt.Errorf("run: %w", pipeline.ErrAborted), code: 2, message: "Import aborted."},
		{name: "canceled", err: context.Canceled, code: 1},
		{name: "failure", err: errors.New("load proposals: boom"), code: 1, message: "load proposals: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := exitCode(tt.err, &out); code != tt.code {
				t.Fatalf("exitCode(%v) = %d, want %d", tt.err, code, tt.code)
			}
			got := strings.TrimSpace(out.String())
			if got != tt.message {
				t.Fatalf("exitCode(%v) wrote %q, want %q", tt.err, got, tt.message)
			}
		})
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, []string{"config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}

func TestConfigShowListsEffectiveValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, []string{"config", "show"})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults shown")
	requireContains(t, out, "ui.albumdiff_layout")
	requireContains(t, out, "match.strong_rec_thresh")
}

func TestLibraryListEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")
	cfgPath := writeTestConfig(t, "[library]\npath = \""+dbPath+"\"\n")

	out, err := runCLI(t, []string{"--config", cfgPath, "library", "list"})
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Library is empty")
}

func TestLibraryRemoveReportsCount(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")
	cfgPath := writeTestConfig(t, "[library]\npath = \""+dbPath+"\"\n")

	out, err := runCLI(t, []string{"--config", cfgPath, "library", "remove", "Pixies", "Doolittle"})
	if err != nil {
		t.Fatalf("library remove: %v", err)
	}
	requireContains(t, out, "Removed 0 album(s)")
}

func TestLibraryListWithoutPathFails(t *testing.T) {
	cfgPath := writeTestConfig(t, "[library]\npath = \"\"\n")

	if _, err := runCLI(t, []string{"--config", cfgPath, "library", "list"}); err == nil {
		t.Fatal("expected error when no library path is configured")
	}
}

func TestImportEmptyProposalFile(t *testing.T) {
	proposals := filepath.Join(t.TempDir(), "proposals.json")
	if err := os.WriteFile(proposals, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write proposals: %v", err)
	}
	cfgPath := writeTestConfig(t, "")

	if _, err := runCLI(t, []string{"--config", cfgPath, "import", "--no-library", proposals}); err != nil {
		t.Fatalf("import: %v", err)
	}
}

func TestImportMissingProposalFile(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	if _, err := runCLI(t, []string{"--config", cfgPath, "import", "--no-library", "does-not-exist.json"}); err == nil {
		t.Fatal("expected error for missing proposals file")
	}
}
