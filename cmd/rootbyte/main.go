package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/rootbyte/pkg/config"
)

// Opts with all CLI options
type Opts struct {
	Config     string `short:"c" long:"config" env:"ROOTBYTE_CONFIG" description:"configuration file, defaults used if not set"`
	NewsAPIKey string `long:"news-api-key" env:"NEWS_API_KEY" description:"NewsAPI key, overrides config"`
	LLMAPIKey  string `long:"llm-api-key" env:"GEMINI_API_KEY" description:"LLM API key, overrides config"`

	New      NewCmd      `command:"new" description:"scaffold a draft article"`
	Build    BuildCmd    `command:"build" description:"build categories, facts and sitemap"`
	Breaking BreakingCmd `command:"breaking" description:"check headlines for a breaking news spike"`
	Trending TrendingCmd `command:"trending" description:"build the daily trending snapshot"`
	Validate ValidateCmd `command:"validate" description:"validate all articles"`
	List     ListCmd     `command:"list" description:"list articles"`
	Stats    StatsCmd    `command:"stats" description:"show articles statistics"`
	Publish  PublishCmd  `command:"publish" description:"mark article as published"`
	Draft    DraftCmd    `command:"draft" description:"mark article as draft"`
	Backup   BackupCmd   `command:"backup" description:"back up the content directory"`
	Facts    FactsCmd    `command:"facts" description:"show did-you-know facts"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] can't load .env file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// run parses args and executes the selected command. Errors are printed by the parser.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	var opts Opts
	env := &cmdEnv{ctx: ctx, out: stdout}
	opts.bind(env)

	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	parser.CommandHandler = func(cmd flags.Commander, cmdArgs []string) error {
		if opts.Version {
			_, err := fmt.Fprintf(stdout, "Version: %s\nGolang: %s\n", revision, runtime.Version())
			return err
		}
		if cmd == nil {
			parser.WriteHelp(stdout)
			return errors.New("command is required")
		}

		color.NoColor = color.NoColor || opts.NoColor
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		setupLog(opts.Debug, cfg.News.APIKey, cfg.LLM.APIKey)
		lgr.Printf("[DEBUG] rootbyte version %s", revision)
		env.cfg = cfg
		return cmd.Execute(cmdArgs)
	}

	_, err := parser.ParseArgs(args)
	return err
}

// loadConfig reads the config file if given, keys from options override keys from the file
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.NewsAPIKey != "" {
		cfg.News.APIKey = opts.NewsAPIKey
	}
	if opts.LLMAPIKey != "" {
		cfg.LLM.APIKey = opts.LLMAPIKey
	}
	return cfg, nil
}

// bind gives every command access to the shared environment
func (o *Opts) bind(env *cmdEnv) {
	o.New.env = env
	o.Build.env = env
	o.Breaking.env = env
	o.Trending.env = env
	o.Validate.env = env
	o.List.env = env
	o.Stats.env = env
	o.Publish.env = env
	o.Draft.env = env
	o.Backup.env = env
	o.Facts.env = env
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
