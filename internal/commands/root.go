package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hnsearch/internal/config"
	"hnsearch/internal/eventbus"
	"hnsearch/internal/hackernews"
	"hnsearch/internal/search"
	"hnsearch/internal/ui"
)

// options holds the flag values. A flag only overrides the config file
// when it was given on the command line.
type options struct {
	configPath      string
	endpoint        string
	variant         string
	timeout         string
	logFile         string
	logLevel        string
	hitsPerPage     int
	scrollThreshold int
	noMouse         bool
	saveConfig      bool
}

// NewRootCmd builds the hnsearch command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hnsearch [query]",
		Short: "hnsearch searches Hacker News stories from the terminal.",
		Long: `hnsearch searches Hacker News through the Algolia search API and
lists the matching stories. More results are fetched page by page with
the "more" key or by scrolling to the end of the list, depending on the
selected variant.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&opts.endpoint, "endpoint", config.DefaultEndpoint, "search API endpoint")
	f.StringVar(&opts.variant, "variant", string(config.VariantComposed),
		"result list variant: "+variantNames())
	f.IntVar(&opts.hitsPerPage, "hits-per-page", config.DefaultHitsPerPage, "hits requested per page")
	f.IntVar(&opts.scrollThreshold, "scroll-threshold", 5, "rows from the bottom that load the next page")
	f.StringVar(&opts.timeout, "timeout", "", "request timeout, e.g. 10s (default none)")
	f.StringVar(&opts.logFile, "log-file", "hnsearch.log", "log file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	f.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse wheel scrolling")
	f.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration to the config file and exit")

	return cmd
}

// ExecuteContext runs the root command and exits non-zero on error
func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func variantNames() string {
	names := make([]string, len(config.Variants))
	for i, v := range config.Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// apply copies the flags that were set onto cfg and validates the result
func (o *options) apply(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if flags.Changed("variant") {
		cfg.Variant = config.Variant(strings.ToLower(o.variant))
	}
	if flags.Changed("hits-per-page") {
		cfg.HitsPerPage = o.hitsPerPage
	}
	if flags.Changed("scroll-threshold") {
		cfg.UISettings.ScrollThreshold = o.scrollThreshold
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = o.timeout
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if o.noMouse {
		cfg.UISettings.MouseWheel = false
	}
	return cfg.Validate()
}

func run(ctx context.Context, flags *pflag.FlagSet, opts *options, args []string) error {
	loader := config.NewConfigService(opts.configPath, nil)
	cfg, loadErr := loader.Load()
	if loadErr != nil {
		cfg = config.DefaultConfig()
	}
	if err := opts.apply(flags, cfg); err != nil {
		return err
	}

	log, closeLog, err := setupLogging(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()
	if loadErr != nil {
		log.WithError(loadErr).Warn("could not load config, using defaults")
	}

	bus := eventbus.New(log)
	defer bus.Close()
	subscribeEventLog(bus, log)

	bus.Publish(eventbus.ConfigLoadedEvent{Path: loader.Path(), Variant: string(cfg.Variant)})

	if opts.saveConfig {
		svc := config.NewConfigService(loader.Path(), bus)
		if err := svc.Save(cfg); err != nil {
			return err
		}
		fmt.Println("Config written to", svc.Path())
		return nil
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	client := hackernews.NewClient(cfg.Endpoint,
		hackernews.WithHitsPerPage(cfg.HitsPerPage),
		hackernews.WithTimeout(timeout),
		hackernews.WithLogger(log))
	session := search.NewSession(client,
		search.WithEventBus(bus),
		search.WithLogger(log),
		search.WithScrollThreshold(cfg.UISettings.ScrollThreshold))

	model, err := ui.NewModel(ctx, cfg, session,
		ui.WithLogger(log),
		ui.WithInitialQuery(strings.Join(args, " ")))
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.MouseWheel {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	log.WithField("variant", cfg.Variant).Info("starting UI")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("interrupted")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("UI exited normally")
	return nil
}
