package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/ojoconmipisto/superbot/pkg/config"
	"github.com/ojoconmipisto/superbot/pkg/conversation"
	"github.com/ojoconmipisto/superbot/pkg/digest"
	"github.com/ojoconmipisto/superbot/pkg/factsource"
	"github.com/ojoconmipisto/superbot/pkg/feed"
	"github.com/ojoconmipisto/superbot/pkg/llm"
	"github.com/ojoconmipisto/superbot/pkg/messenger"
	"github.com/ojoconmipisto/superbot/pkg/repository"
	"github.com/ojoconmipisto/superbot/pkg/scheduler"
	"github.com/ojoconmipisto/superbot/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"superbot.yml" description:"config file"`
	Digest string `long:"digest" choice:"daily" choice:"weekly" description:"run one digest and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] can't load config %s: %v", opts.Config, err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.Transport.APIKey, cfg.LLM.APIKey)

	log.Printf("[INFO] starting superbot version %s", revision)

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

	if err := run(ctx, cfg, opts); err != nil {
		log.Printf("[ERROR] superbot failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the application together and blocks until shutdown
func run(ctx context.Context, cfg *config.Config, opts Opts) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close repositories: %v", err)
		}
	}()

	sender := messenger.New(messenger.Config{
		Endpoint: cfg.Transport.Endpoint,
		APIKey:   cfg.Transport.APIKey,
		Timeout:  cfg.Transport.Timeout,
	})

	feedClient := feed.NewClient(feed.Config{
		DailyURL:  cfg.Feed.DailyURL,
		WeeklyURL: cfg.Feed.WeeklyURL,
		Timeout:   cfg.Feed.Timeout,
		UserAgent: cfg.Feed.UserAgent,
	})

	dig := digest.New(digest.Params{
		Config:   cfg.GetDigestConfig(),
		Feed:     feedClient,
		Store:    repos.Subscriber,
		Sender:   sender,
		Audit:    repos.Audit,
		Facts:    makeFactSource(cfg),
		Rewriter: makeRewriter(cfg),
		Specials: repos.Special,
	})

	// one-shot mode for external cron
	if opts.Digest != "" {
		_, err := dig.Run(ctx, digest.Mode(opts.Digest))
		return err
	}

	sched, err := makeScheduler(cfg, dig)
	if err != nil {
		return err
	}

	engine := conversation.New(repos.Subscriber, sender, repos.Audit, conversation.NewSessionStore(0))
	srv := server.New(cfg, engine, revision, opts.Debug)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		sched.Start(ctx)
		<-ctx.Done()
		sched.Stop()
		return nil
	})
	group.Go(func() error {
		return srv.Run(ctx)
	})

	return group.Wait()
}

func makeFactSource(cfg *config.Config) digest.FactSource {
	if !cfg.FactSource.Enabled {
		return nil
	}
	return factsource.New(factsource.Config{
		URL:     cfg.FactSource.URL,
		Timeout: cfg.FactSource.Timeout,
	})
}

func makeRewriter(cfg *config.Config) digest.Rewriter {
	if !cfg.LLM.Enabled {
		return nil
	}
	return llm.NewRewriter(cfg.GetLLMConfig())
}

func makeScheduler(cfg *config.Config, dig *digest.Digest) (*scheduler.Scheduler, error) {
	daily, err := config.ParseClock(cfg.Digest.DailyAt)
	if err != nil {
		return nil, fmt.Errorf("daily run time: %w", err)
	}
	weekly, err := config.ParseClock(cfg.Digest.WeeklyAt)
	if err != nil {
		return nil, fmt.Errorf("weekly run time: %w", err)
	}
	day, err := config.ParseWeekday(cfg.Digest.WeeklyDay)
	if err != nil {
		return nil, fmt.Errorf("weekly run day: %w", err)
	}

	return scheduler.New(dig, scheduler.Config{
		DailyHour:    daily.Hour,
		DailyMinute:  daily.Minute,
		WeeklyHour:   weekly.Hour,
		WeeklyMinute: weekly.Minute,
		WeeklyDay:    day,
	}), nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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

	var secrets []string
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
