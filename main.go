// Panorama prints the language editions of a Taiwan Panorama article, either
// one after another or interleaved section by section.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"panorama/config"
	"panorama/prompt"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "panorama [url]",
		Short: "Multi-language article reader for Taiwan Panorama",
		Long: `Panorama finds every language edition of a Taiwan Panorama story and
prints them in one of two layouts:

  full        each edition in one piece, under its language label
  paragraph   the sections of several editions interleaved, one section at a time

Missing arguments are asked for interactively.`,
		Example: `  panorama https://www.taiwan-panorama.com/en/Articles/Details?Guid=...
  panorama --mode paragraph --langs zh,en <url>
  panorama --init-config > ~/.config/panorama/config.toml`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.initConfig {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultTOML())
				return nil
			}
			if len(args) > 0 {
				opts.seed = args[0]
			}

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(opts.verbose, opts.logJSON)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(cfg, logger, os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.run(ctx, opts.seed, opts.langs)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", "", "output layout: full or paragraph")
	f.StringVar(&opts.langs, "langs", "", "language codes to print, e.g. en,ja")
	f.IntVar(&opts.width, "width", 0, "wrap width in cells (0 = no wrapping, -1 = terminal width)")
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/panorama/config.toml)")
	f.BoolVar(&opts.browser, "browser", false, "retry blocked pages with headless Chrome")
	f.IntVar(&opts.concurrency, "concurrency", 0, "parallel fetches (0 = one per language)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	f.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")
	f.BoolVar(&opts.initConfig, "init-config", false, "print the default config and exit")

	return cmd
}

// options holds the command line flags.
type options struct {
	seed        string
	mode        string
	langs       string
	width       int
	configPath  string
	browser     bool
	concurrency int
	verbose     bool
	logJSON     bool
	initConfig  bool
}

// apply overrides config values with the flags that were set explicitly.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Output.Mode = o.mode
	}
	if f.Changed("width") {
		cfg.Output.Width = o.width
	}
	if f.Changed("concurrency") {
		cfg.Pipeline.Concurrency = o.concurrency
	}
	if o.browser {
		cfg.Fetcher.BrowserFallback = true
	}
}

func newLogger(verbose, asJSON bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("run", uuid.NewString())
}
