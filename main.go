package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	m3uparser "github.com/pawanpaudel93/go-iptv-fetch/m3uparser"
)

// Config holds one run's settings. Zero values are replaced by applyDefaults.
type Config struct {
	Probe        bool
	Source       string
	OutDir       string
	Prefix       string
	NamePrefix   []string
	NameContains []string
	UserAgent    string
	Timeout      time.Duration
	Delay        time.Duration
	Concurrency  int
	JSON         bool
	ProgressBar  bool
	LogLevel     string
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = m3uparser.DefaultSource
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.Prefix == "" {
		c.Prefix = "china_tv"
	}
	if c.UserAgent == "" {
		c.UserAgent = m3uparser.DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = m3uparser.DefaultTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
}

// predicate - Name filter built from the configured prefixes and substrings.
func (c *Config) predicate() m3uparser.Predicate {
	var preds []m3uparser.Predicate
	for _, p := range c.NamePrefix {
		preds = append(preds, m3uparser.NameHasPrefix(p))
	}
	for _, s := range c.NameContains {
		preds = append(preds, m3uparser.NameContains(s))
	}
	if len(preds) == 0 {
		return nil
	}
	return m3uparser.Any(preds...)
}

func (c *Config) path(kind, ext string) string {
	return filepath.Join(c.OutDir, fmt.Sprintf("%s_%s.%s", c.Prefix, kind, ext))
}

func newRootCmd() *cobra.Command {
	cfg := &Config{}
	cmd := &cobra.Command{
		Use:           "go-iptv-fetch",
		Short:         "Fetch the iptv-org China playlist and keep CCTV and 卫视 channels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&cfg.Probe, "probe", false, "probe stream availability and write the alive lists")
	f.StringVar(&cfg.Source, "source", m3uparser.DefaultSource, "playlist URL or local file")
	f.StringVar(&cfg.OutDir, "out-dir", ".", "directory for the output files")
	f.StringVar(&cfg.Prefix, "prefix", "china_tv", "output file name prefix")
	f.StringSliceVar(&cfg.NamePrefix, "name-prefix", []string{"CCTV"}, "keep channels whose name starts with one of these")
	f.StringSliceVar(&cfg.NameContains, "name-contains", []string{"卫视"}, "keep channels whose name contains one of these")
	f.StringVar(&cfg.UserAgent, "user-agent", m3uparser.DefaultUserAgent, "User-Agent for the fetch and probes")
	f.DurationVar(&cfg.Timeout, "timeout", m3uparser.DefaultTimeout, "timeout per HTTP request")
	f.DurationVar(&cfg.Delay, "delay", m3uparser.DefaultProbeDelay, "pause between probe starts (0 means 200ms, negative disables)")
	f.IntVar(&cfg.Concurrency, "concurrency", 1, "probes in flight at once")
	f.BoolVar(&cfg.JSON, "json", false, "also write the filtered list as JSON")
	f.BoolVar(&cfg.ProgressBar, "progress-bar", false, "draw a progress bar while probing")
	f.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

// run - Fetch, filter, dedupe and write; then probe when asked.
func run(ctx context.Context, cfg *Config) error {
	cfg.applyDefaults()

	log.Infoln("Fetching China IPTV list...")
	parser := &m3uparser.M3uParser{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Countries: m3uparser.NewCountryResolver(),
	}
	if err := parser.ParseM3u(ctx, cfg.Source); err != nil {
		return err
	}
	parser.FilterBy(cfg.predicate())
	parser.Dedupe()
	streams := parser.GetStreamsSlice()
	log.Infof("Total channels: %d", len(streams))

	if err := m3uparser.SaveM3U(cfg.path("raw", "m3u"), streams); err != nil {
		return err
	}
	if err := m3uparser.SaveTXT(cfg.path("raw", "txt"), streams); err != nil {
		return err
	}

	if cfg.Probe {
		prober := &m3uparser.Prober{
			Timeout:     cfg.Timeout,
			Concurrency: cfg.Concurrency,
			Delay:       cfg.Delay,
			ProgressBar: cfg.ProgressBar,
		}
		alive := parser.CheckLive(ctx, prober)
		if err := m3uparser.SaveM3U(cfg.path("alive", "m3u"), alive); err != nil {
			return err
		}
		if err := m3uparser.SaveTXT(cfg.path("alive", "txt"), alive); err != nil {
			return err
		}
		log.Infof("Alive: %d/%d", len(alive), len(streams))
	}

	if cfg.JSON {
		if err := parser.SaveJSONToFile(cfg.path("raw", "json")); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalln(err)
	}
}
