package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spamdomains/lib/config"
	"spamdomains/lib/lists"
	"spamdomains/lib/log"
)

// multiFlag collects repeated occurrences of a string flag.
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func CreateUpdateCommand() *UpdateCommand {
	gc := &UpdateCommand{
		fs: flag.NewFlagSet("update", flag.ExitOnError),
	}

	gc.fs.StringVar(&gc.Output, "output", "", "Path of the aggregated blocklist file (overrides config)")
	gc.fs.StringVar(&gc.SourcesFile, "sources-file", "", "Path of the newline-delimited source URLs file (overrides config)")
	gc.fs.Var(&gc.ExtraSources, "source", "Additional source URL (can be repeated)")
	gc.fs.IntVar(&gc.Timeout, "timeout", 0, "Per-source fetch timeout in seconds (overrides config)")

	return gc
}

type UpdateCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	Output       string
	SourcesFile  string
	Timeout      int
	ExtraSources multiFlag
}

func (g *UpdateCommand) Name() string {
	return g.fs.Name()
}

func (g *UpdateCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	g.cfg = cfg

	// CLI flags win over the config file. Paths given on the command line
	// are anchored to the working directory, not the config directory.
	if g.Output != "" {
		if g.cfg.General.OutputPath, err = filepath.Abs(g.Output); err != nil {
			return fmt.Errorf("failed to resolve output path: %v", err)
		}
	}
	if g.SourcesFile != "" {
		if g.cfg.General.SourcesFile, err = filepath.Abs(g.SourcesFile); err != nil {
			return fmt.Errorf("failed to resolve sources file path: %v", err)
		}
	}
	if g.Timeout > 0 {
		g.cfg.General.DownloadTimeout = g.Timeout
	}

	return nil
}

func (g *UpdateCommand) Run() error {
	general := g.cfg.General

	sources, err := g.resolveSources()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("%w: add URLs to %s or pass -source", lists.ErrNoSources, general.SourcesFile)
	}

	fetcher := lists.NewFetcher(time.Duration(general.DownloadTimeout)*time.Second, general.UserAgent)
	aggregator := lists.NewAggregator(fetcher)

	domains, err := aggregator.Aggregate(context.Background(), sources)
	if err != nil {
		return err
	}

	writer, err := lists.NewWriter(g.cfg.GetAbsOutputPath(), general.EntryTemplate)
	if err != nil {
		return err
	}

	updated, err := writer.Write(domains)
	if err != nil {
		return err
	}

	if updated {
		log.Infof("Updated %s: %d domains", general.OutputPath, len(domains))
	} else {
		log.Infof("No changes: %s: %d domains", general.OutputPath, len(domains))
	}

	return nil
}

// resolveSources gathers source URLs from the config file sources, the
// sources file (if it exists) and the repeated -source flags, in that order.
func (g *UpdateCommand) resolveSources() ([]string, error) {
	var sources []string

	for _, src := range g.cfg.Sources {
		sources = append(sources, src.URL)
	}

	if sourcesFile := g.cfg.GetAbsSourcesFile(); sourcesFile != "" {
		if _, err := os.Stat(sourcesFile); err == nil {
			fromFile, err := lists.ReadSourcesFile(sourcesFile)
			if err != nil {
				return nil, err
			}
			sources = append(sources, fromFile...)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat sources file '%s': %v", sourcesFile, err)
		}
	}

	sources = append(sources, g.ExtraSources...)

	return sources, nil
}
