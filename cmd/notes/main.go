package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	notes "github.com/markhazleton/mark-hazleton-s-notes"
	"github.com/markhazleton/mark-hazleton-s-notes/logfields"
	"github.com/markhazleton/mark-hazleton-s-notes/scaffold"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultConfig = "notes.yaml"

// CLI is the root command line.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path (defaults to ${default_config} when present)" default:""`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build   BuildCmd   `cmd:"" default:"1" help:"Prerender every route into the output directory"`
	Preview PreviewCmd `cmd:"" help:"Serve the output directory locally"`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration and base template"`
	Version VersionCmd `cmd:"" help:"Print the version"`

	logger *slog.Logger
}

// AfterApply runs after flag parsing and sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
	return nil
}

func (c *CLI) loadConfig() (notes.SiteConfig, error) {
	path := c.Config
	if path == "" {
		if _, err := os.Stat(defaultConfig); err == nil {
			path = defaultConfig
		}
	}
	return notes.LoadConfig(path)
}

// BuildCmd runs the prerender pipeline.
type BuildCmd struct {
	Out         string `short:"o" help:"Output directory (overrides config)"`
	Concurrency int    `short:"j" help:"Number of routes rendered in parallel (overrides config)"`
	NoRemote    bool   `help:"Skip fetching repository statistics"`
}

func (b *BuildCmd) apply(cfg *notes.SiteConfig) {
	if b.Out != "" {
		cfg.OutDir = b.Out
	}
	if b.Concurrency > 0 {
		cfg.Concurrency = b.Concurrency
	}
	if b.NoRemote {
		cfg.Remote.Disabled = true
	}
}

func (b *BuildCmd) Run(root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b.apply(&cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	site := notes.New(cfg, notes.WithLogger(root.logger))
	defer func() {
		if err := site.Close(); err != nil {
			root.logger.Warn("Failed to close ledger", logfields.Error(err))
		}
	}()

	res, err := site.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Prerendered %d routes.\n", len(res.Routes))
	return nil
}

// PreviewCmd serves the built site, optionally rebuilding on change.
type PreviewCmd struct {
	Addr  string `short:"a" help:"Listen address (overrides config)"`
	Watch bool   `short:"w" help:"Build first, then rebuild when data or content changes"`
}

func (p *PreviewCmd) Run(root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if p.Watch {
		site := notes.New(cfg, notes.WithLogger(root.logger))
		defer site.Close()
		if _, err := site.Build(ctx); err != nil {
			return err
		}
		w := notes.NewWatcher(site)
		go func() {
			if err := w.Run(ctx); err != nil {
				root.logger.Error("Watcher stopped", logfields.Error(err))
			}
		}()
	}

	return notes.NewPreviewServer(cfg, root.logger).Start(ctx)
}

// InitCmd writes the starter files into a directory.
type InitCmd struct {
	Dir   string `arg:"" optional:"" default:"." help:"Target directory"`
	Name  string `help:"Site name" default:"Mark Hazleton"`
	URL   string `help:"Canonical site origin" default:"https://markhazleton.com"`
	Force bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(root *CLI) error {
	written, err := scaffold.Write(i.Dir, scaffold.Data{SiteName: i.Name, SiteURL: i.URL}, i.Force)
	if errors.Is(err, scaffold.ErrExists) {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	if err != nil {
		return err
	}
	for _, path := range written {
		root.logger.Info("Created file", logfields.Path(path))
	}
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("notes %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("notes"),
		kong.Description("Prerender the notes site into static HTML."),
		kong.UsageOnError(),
		kong.Vars{"default_config": defaultConfig},
	)
	if err := ctx.Run(&cli); err != nil {
		slog.Error("Command failed", logfields.Error(err))
		os.Exit(notes.ExitCode(err))
	}
}
