package lists

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"spamdomains/lib/domain"
	"spamdomains/lib/log"
)

// ErrNoSources is returned when a run has nothing to aggregate.
var ErrNoSources = errors.New("no sources provided")

// Aggregator collects canonical domains from a set of remote list sources
// into one deduplicated set.
type Aggregator struct {
	fetcher *Fetcher
}

func NewAggregator(fetcher *Fetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// Aggregate fetches every source in order and returns the deduplicated,
// lexicographically sorted set of canonical domains. Sources are strictly
// sequential and a fetch failure aborts the whole run: a partial aggregate
// must never replace a complete one. Malformed lines and tokens are routine
// input and contribute nothing.
func (a *Aggregator) Aggregate(ctx context.Context, sources []string) ([]string, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	set := make(map[string]struct{})
	for _, url := range sources {
		log.Infof("Fetching list from URL: %s", url)

		text, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate source \"%s\": %w", url, err)
		}

		// The body is already fully in memory, so lines carry no length
		// limit. Extraction trims any \r left by CRLF endings.
		added := 0
		for _, line := range strings.Split(text, "\n") {
			for _, d := range domain.ExtractLine(line) {
				if _, ok := set[d]; !ok {
					set[d] = struct{}{}
					added++
				}
			}
		}

		log.Infof("List %s processed: %d new domains (%d total)", url, added, len(set))
	}

	domains := make([]string, 0, len(set))
	for d := range set {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	return domains, nil
}
