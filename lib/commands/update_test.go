package commands

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"spamdomains/lib/lists"
)

func TestUpdateCommand_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0.0.0.0 tracker.example.com\n||ads.example.net^\n"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "spamdomains.txt")

	runUpdate := func() error {
		cmd := CreateUpdateCommand()
		args := []string{
			"-output", outputPath,
			"-sources-file", filepath.Join(tmpDir, "no-such-sources.txt"),
			"-source", server.URL,
		}
		if err := cmd.Init(args, &AppContext{}); err != nil {
			return err
		}
		return cmd.Run()
	}

	if err := runUpdate(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	want := "ads.example.net\ntracker.example.com\n"
	if string(content) != want {
		t.Errorf("Expected output %q, got %q", want, content)
	}

	// Identical second run must leave the file bytes unchanged.
	if err := runUpdate(); err != nil {
		t.Fatalf("Expected no error on second run, got: %v", err)
	}
	after, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(after) != want {
		t.Errorf("Expected unchanged output, got %q", after)
	}
}

func TestUpdateCommand_SourcesFromFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("listed.example.org\n"))
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "spamdomains.txt")
	sourcesPath := filepath.Join(tmpDir, "sources.txt")
	if err := os.WriteFile(sourcesPath, []byte("# one source\n"+server.URL+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	cmd := CreateUpdateCommand()
	args := []string{"-output", outputPath, "-sources-file", sourcesPath}
	if err := cmd.Init(args, &AppContext{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(content) != "listed.example.org\n" {
		t.Errorf("Unexpected output content: %q", content)
	}
}

func TestUpdateCommand_NoSources(t *testing.T) {
	tmpDir := t.TempDir()

	cmd := CreateUpdateCommand()
	args := []string{
		"-output", filepath.Join(tmpDir, "spamdomains.txt"),
		"-sources-file", filepath.Join(tmpDir, "no-such-sources.txt"),
	}
	if err := cmd.Init(args, &AppContext{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	err := cmd.Run()
	if !errors.Is(err, lists.ErrNoSources) {
		t.Errorf("Expected ErrNoSources, got: %v", err)
	}
}

func TestUpdateCommand_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "spamdomains.txt")

	cmd := CreateUpdateCommand()
	args := []string{
		"-output", outputPath,
		"-sources-file", filepath.Join(tmpDir, "no-such-sources.txt"),
		"-source", server.URL,
	}
	if err := cmd.Init(args, &AppContext{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := cmd.Run(); err == nil {
		t.Fatal("Expected error when the only source fails")
	}

	// Nothing may be persisted from an aborted run.
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Error("Expected no output file after aborted run")
	}
}
