package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/config"
	"github.com/lutogin/listingcharts/src/logging"
	"github.com/lutogin/listingcharts/src/server"
)

// cli carries the root flags and the config they resolve to.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        config.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "listingviewer",
		Short:         "Listing price charts: desktop viewer, headless export and HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(c.cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file (default listingcharts.yaml when present)")
	pf.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.StringVar(&c.logFormat, "log-format", "", "console, json or auto (overrides config)")

	root.AddCommand(
		&cobra.Command{
			Use:   "view",
			Short: "Open the desktop viewer",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return runViewer(c.cfg) },
		},
		newRenderCmd(c),
		newServeCmd(c),
		newListingsCmd(),
	)
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		if _, ok := logging.ParseLevel(c.logLevel); !ok {
			return fmt.Errorf("unknown log level %q", c.logLevel)
		}
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logging.SetOutput(os.Stderr, cfg.LogFormat)
	logging.SetLogLevel(cfg.LogLevel)
	c.cfg = cfg
	logging.Debugf("[listingviewer] config: %+v", cfg)
	return nil
}

// addToggleFlags registers --subject/--trend on fs. Defaults come from the config at
// parse time, so resolveToggles only overrides what the user actually passed.
func addToggleFlags(fs *pflag.FlagSet, t *charts.Toggles) {
	fs.BoolVar(&t.ShowSubject, "subject", true, "show the subject property and its reference line")
	fs.BoolVar(&t.ShowTrendline, "trend", true, "show the trend line and band")
}

func resolveToggles(fs *pflag.FlagSet, flags charts.Toggles, cfg config.Config) charts.Toggles {
	t := charts.Toggles{ShowSubject: cfg.ShowSubject, ShowTrendline: cfg.ShowTrendline}
	if fs.Changed("subject") {
		t.ShowSubject = flags.ShowSubject
	}
	if fs.Changed("trend") {
		t.ShowTrendline = flags.ShowTrendline
	}
	return t
}

func newServeCmd(c *cli) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the charts over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if listen != "" {
				cfg.Listen = listen
			}
			return server.New(cfg).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}
