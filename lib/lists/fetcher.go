package lists

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Fetcher retrieves list documents over HTTP. It performs a single attempt
// per source: retry and backoff policy belongs to whoever schedules runs,
// not here.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads the full body of url and returns it as text. Bodies that
// are not valid UTF-8 are reinterpreted as Latin-1 so that legacy hosts
// files with stray high bytes still parse.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download list from %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download list from %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %v", url, err)
	}

	return decodeText(body), nil
}

func decodeText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	// Latin-1 decoding cannot fail, every byte maps to a code point.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(body)
	return string(decoded)
}
