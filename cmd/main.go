package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/okian/rbrseries/internal/adapters/exporter"
	app "github.com/okian/rbrseries/internal/app"
	"github.com/okian/rbrseries/internal/config"
	"github.com/okian/rbrseries/internal/domain/scoring"
	"github.com/okian/rbrseries/internal/season"
	"github.com/okian/rbrseries/pkg/logger"
	"github.com/okian/rbrseries/pkg/metrics"
)

// Flag names.
const (
	flagLogLevel    = "log-level"
	flagWorkers     = "workers"
	flagBestOf      = "best-of"
	flagStrictNames = "strict-names"
	flagMetricsFile = "metrics-file"
	flagManifest    = "manifest"
	flagFormat      = "format"
	flagOutput      = "output"
	flagEvent       = "event"

	stdoutName  = "-"
	metadataCfg = "config"
	stageExport = "export"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		os.Stderr.WriteString("rbrseries: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "rbrseries",
		Usage:     "classify a season of running events into series standings",
		UsageText: "rbrseries [global options] command [options]\n\nConfiguration is read from the YAML file named by " + config.EnvFile + " and " + config.EnvPrefix + "* variables.",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagLogLevel, Usage: "debug, info, warn or error"},
			&cli.IntFlag{Name: flagWorkers, Usage: "events processed in parallel"},
			&cli.IntFlag{Name: flagBestOf, Usage: "event scores counted toward a total"},
			&cli.BoolFlag{Name: flagStrictNames, Usage: "fail when a name appears twice in one event"},
			&cli.StringFlag{Name: flagMetricsFile, Usage: "write run metrics to `FILE` in Prometheus text format"},
		},
		Before: func(c *cli.Context) error {
			return setup(c, stderr)
		},
		After: writeMetrics,
		Commands: []*cli.Command{
			classifyCommand(),
			scoreCommand(),
			curveCommand(),
		},
	}
}

// setup initializes logging and loads configuration, letting global flags
// override it.
func setup(c *cli.Context, stderr io.Writer) error {
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.Load(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if c.IsSet(flagWorkers) {
		cfg.WorkerCount = c.Int(flagWorkers)
	}
	if c.IsSet(flagBestOf) {
		cfg.BestOf = c.Int(flagBestOf)
	}
	if c.IsSet(flagStrictNames) {
		cfg.StrictNames = c.Bool(flagStrictNames)
	}
	if c.IsSet(flagMetricsFile) {
		cfg.MetricsFile = c.String(flagMetricsFile)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metadataCfg] = cfg
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[metadataCfg].(*config.Config); ok {
		return cfg
	}
	return config.New()
}

func newService(cfg *config.Config) *app.Service {
	return app.New(
		app.WithLogger(logger.Named("classification")),
		app.WithBestOf(cfg.BestOf),
		app.WithBonus(cfg.BonusTable()),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithNameDistance(cfg.NameDistance),
		app.WithStrictNames(cfg.StrictNames),
	)
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "classify a season and write its standings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagManifest, Aliases: []string{"m"}, Usage: "season manifest `FILE`", Required: true},
			&cli.StringFlag{Name: flagFormat, Aliases: []string{"f"}, Usage: "text, csv, xlsx or yaml"},
			&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "output `FILE`, or \"-\" for stdout", Value: stdoutName},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			name := cfg.OutputFormat
			if c.IsSet(flagFormat) {
				name = c.String(flagFormat)
			}
			format, err := exporter.ParseFormat(name)
			if err != nil {
				return err
			}
			exp, err := exporter.New(format)
			if err != nil {
				return err
			}

			m, err := season.Load(c.String(flagManifest))
			if err != nil {
				return err
			}
			res, err := newService(cfg).Classify(c.Context, m)
			if err != nil {
				return err
			}

			w := openOutput(c.App.Writer, c.String(flagOutput))
			if err := exp.Export(c.Context, w, res.Report()); err != nil {
				_ = w.Close()
				metrics.RecordClassificationError(stageExport)
				return err
			}
			return w.Close()
		},
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "print the scored tables of one event",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagManifest, Aliases: []string{"m"}, Usage: "season manifest `FILE`", Required: true},
			&cli.StringFlag{Name: flagEvent, Aliases: []string{"e"}, Usage: "event `ID`", Required: true},
		},
		Action: func(c *cli.Context) error {
			m, err := season.Load(c.String(flagManifest))
			if err != nil {
				return err
			}
			tables, err := newService(configFrom(c)).ScoreEvent(c.Context, m, c.String(flagEvent))
			if err != nil {
				return err
			}
			return exporter.WriteEvent(c.App.Writer, tables)
		},
	}
}

func curveCommand() *cli.Command {
	return &cli.Command{
		Name:  "curve",
		Usage: "print the points awarded per rank",
		Action: func(c *cli.Context) error {
			return exporter.WriteCurve(c.App.Writer, scoring.DefaultCurve.Values())
		},
	}
}

// openOutput returns stdout for "-" and a lazily opened file otherwise.
func openOutput(stdout io.Writer, path string) io.WriteCloser {
	if path == "" || path == stdoutName {
		return nopCloser{stdout}
	}
	return exporter.OpenFile(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeMetrics dumps the run's metrics when a metrics file is configured.
func writeMetrics(c *cli.Context) error {
	cfg, ok := c.App.Metadata[metadataCfg].(*config.Config)
	if !ok || cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		return err
	}
	logger.Get().Debug(c.Context, "metrics written", logger.String("file", cfg.MetricsFile))
	return nil
}
