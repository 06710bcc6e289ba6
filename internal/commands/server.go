package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/api"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/generator"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

// ServerCommand implements the server subcommand for running the HTTP API.
type ServerCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	bindAddr string
}

func CreateServerCommand() *ServerCommand {
	return &ServerCommand{}
}

func (c *ServerCommand) Name() string {
	return "server"
}

func (c *ServerCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet("server", flag.ExitOnError)
	c.fs.StringVar(&c.bindAddr, "bind", "", "Address to bind the HTTP server (overrides api_bind_address)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.bindAddr == "" {
		c.bindAddr = cfg.General.APIBindAddress
	}

	return nil
}

func (c *ServerCommand) Run() error {
	log.Infof("Starting mikrotik-addresslist API server on %s", c.bindAddr)
	log.Infof("Configuration loaded from: %s", c.ctx.ConfigPath)
	log.Infof("Serving %d configured script(s)", len(c.cfg.Scripts))

	gen := generator.New(c.cfg.General, c.ctx.Version)
	server := api.NewServer(c.cfg, gen, c.bindAddr)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Infof("Server stopped gracefully")
	}

	return nil
}
