package lists

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadSourcesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sources.txt")

	content := "# blocklists\n" +
		"https://example.com/hosts.txt\n" +
		"\n" +
		"  https://example.org/adblock.txt  \n" +
		"# disabled: https://example.net/old.txt\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write sources file: %v", err)
	}

	sources, err := ReadSourcesFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"https://example.com/hosts.txt", "https://example.org/adblock.txt"}
	if !reflect.DeepEqual(sources, want) {
		t.Errorf("Expected %v, got %v", want, sources)
	}
}

func TestReadSourcesFile_Missing(t *testing.T) {
	if _, err := ReadSourcesFile("/nonexistent/sources.txt"); err == nil {
		t.Error("Expected error for missing sources file")
	}
}
