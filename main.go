package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"spamdomains/lib/commands"
	"spamdomains/lib/lists"
	"spamdomains/lib/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (optional, flags override it)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable verbose logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Spam Domains Blocklist Aggregator\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  update                  Fetch all sources and rebuild the blocklist file\n")
		fmt.Fprintf(os.Stderr, "  serve                   Serve the blocklist file over HTTP\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.SetVerbose(ctx.Verbose)

	cmds := []commands.Runner{
		commands.CreateUpdateCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				// A run without any usable sources is a configuration
				// problem, reported with its own exit code.
				if errors.Is(err, lists.ErrNoSources) {
					log.Errorf("%v", err)
					os.Exit(2)
				}
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
