package api

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"time"

	"spamdomains/lib/lists"
)

// StatusResponse describes the current state of the aggregated blocklist.
type StatusResponse struct {
	Domains  int       `json:"domains"`
	Checksum string    `json:"checksum"`
	Size     int       `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// HandleBlocklist serves the aggregated blocklist file as plain text.
func HandleBlocklist(outputPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := os.ReadFile(outputPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				RespondNotFound(w, "blocklist has not been generated yet, run the update command first")
				return
			}
			RespondInternalError(w, "failed to read blocklist file")
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

// HandleStatus reports domain count, checksum and mtime of the blocklist.
func HandleStatus(outputPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(outputPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				RespondNotFound(w, "blocklist has not been generated yet, run the update command first")
				return
			}
			RespondInternalError(w, "failed to stat blocklist file")
			return
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			RespondInternalError(w, "failed to read blocklist file")
			return
		}

		RespondOK(w, StatusResponse{
			Domains:  bytes.Count(content, []byte{'\n'}),
			Checksum: lists.Checksum(content),
			Size:     len(content),
			Modified: info.ModTime().UTC(),
		})
	}
}
