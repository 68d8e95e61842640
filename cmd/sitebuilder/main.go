package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	berrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Build struct {
		Output      string `short:"o" help:"Output directory for the generated site (overrides paths.output)"`
		MetricsFile string `help:"Write Prometheus textfile-collector metrics to this path after the run"`
	} `cmd:"" help:"Build the site from the content directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration and template files"`
	} `cmd:"" help:"Initialize a new configuration file and starter templates"`
}

func main() {
	ctx := kong.Parse(&CLI, kong.Vars{"version": versionString()})

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runBuild(cfg, CLI.Build.Output, CLI.Build.MetricsFile); err != nil {
			slog.Error("Build failed",
				logfields.Error(err),
				slog.String("category", string(berrors.GetCategory(err))))
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}

func versionString() string {
	return fmt.Sprintf("sitebuilder %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime)
}

// runBuild performs one full site build. Per-item failures do not produce an
// error here; only run-level failures do.
func runBuild(cfg *config.Config, outputDir, metricsFile string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator := site.NewGenerator(cfg, outputDir)

	var prometheusRecorder *metrics.PrometheusRecorder
	if metricsFile != "" {
		prometheusRecorder = metrics.NewPrometheusRecorder(nil)
		generator.SetRecorder(prometheusRecorder)
	}

	report, err := generator.Build(ctx)
	if report != nil {
		fmt.Fprintln(os.Stderr, report.Summary())
	}

	if prometheusRecorder != nil {
		if werr := metrics.WriteTextfile(metricsFile, prometheusRecorder); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Error(werr))
		}
	}
	return err
}

// runInit scaffolds config.yaml plus the starter templates so a fresh checkout
// can build immediately.
func runInit(configPath string, force bool) error {
	slog.Info("Initializing configuration", logfields.Path(configPath), slog.Bool("force", force))
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := templates.WriteDefaults(cfg.Paths.Templates, force); err != nil {
		return err
	}
	slog.Info("Initialized site scaffold", logfields.Path(cfg.Paths.Templates))
	return nil
}
