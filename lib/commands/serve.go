package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spamdomains/lib/api"
	"spamdomains/lib/config"
	"spamdomains/lib/log"
)

func CreateServeCommand() *ServeCommand {
	gc := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}

	gc.fs.StringVar(&gc.Bind, "bind", "", "Listen address, e.g. 127.0.0.1:8080 (overrides config)")

	return gc
}

type ServeCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	Bind string
}

func (g *ServeCommand) Name() string {
	return g.fs.Name()
}

func (g *ServeCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	g.cfg = cfg

	if g.Bind != "" {
		g.cfg.General.BindAddress = g.Bind
	}

	return nil
}

func (g *ServeCommand) Run() error {
	server := api.NewServer(g.cfg.General.BindAddress, g.cfg.GetAbsOutputPath())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infof("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}
