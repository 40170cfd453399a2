package lists

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/valyala/fasttemplate"
)

// entryTemplateTag is the placeholder replaced with the canonical domain in
// every rendered output line.
const entryTemplateTag = "domain"

// Writer renders the aggregated set to a flat sorted file and replaces it
// only when the content actually changed, so downstream consumers watching
// mtimes never see no-op rewrites.
type Writer struct {
	path     string
	template *fasttemplate.Template
}

func NewWriter(path, entryTemplate string) (*Writer, error) {
	template, err := fasttemplate.NewTemplate(entryTemplate, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("invalid entry template \"%s\": %v", entryTemplate, err)
	}
	return &Writer{path: path, template: template}, nil
}

// Render produces the output file content: one templated line per domain,
// "\n" endings, trailing newline present iff the set is non-empty.
func (w *Writer) Render(domains []string) []byte {
	var buf bytes.Buffer
	for _, d := range domains {
		_, _ = w.template.Execute(&buf, map[string]interface{}{
			entryTemplateTag: d,
		})
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write compares the candidate content against the current output file and
// atomically replaces it when the checksums differ. Returns true if the file
// was updated, false if it was left untouched.
func (w *Writer) Write(domains []string) (bool, error) {
	after := w.Render(domains)

	before, err := os.ReadFile(w.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read existing output file %s: %v", w.path, err)
	}

	if Checksum(before) == Checksum(after) {
		return false, nil
	}

	// Write-then-rename so concurrent readers never observe a partial file.
	tmpPath := w.path + ".tmp"
	if err := os.WriteFile(tmpPath, after, 0644); err != nil {
		return false, fmt.Errorf("failed to write temporary output file %s: %v", tmpPath, err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		return false, fmt.Errorf("failed to replace output file %s: %v", w.path, err)
	}

	return true, nil
}

// Checksum returns the hex SHA-256 digest of content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
