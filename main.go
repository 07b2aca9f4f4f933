package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nstehr/serenity/serenity-core/agent"
	"github.com/nstehr/serenity/serenity-core/config"
	"github.com/nstehr/serenity/serenity-core/ipc"
	"github.com/nstehr/serenity/serenity-core/rules"
	"github.com/nstehr/serenity/serenity-core/tactics"
)

const banner = `
███████╗███████╗██████╗ ███████╗███╗   ██╗██╗████████╗██╗   ██╗
██╔════╝██╔════╝██╔══██╗██╔════╝████╗  ██║██║╚══██╔══╝╚██╗ ██╔╝
███████╗█████╗  ██████╔╝█████╗  ██╔██╗ ██║██║   ██║    ╚████╔╝
╚════██║██╔══╝  ██╔══██╗██╔══╝  ██║╚██╗██║██║   ██║     ╚██╔╝
███████║███████╗██║  ██║███████╗██║ ╚████║██║   ██║      ██║
╚══════╝╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝   ╚═╝      ╚═╝

Hex Arena Fleet Commander`

const redialDelay = 2 * time.Second

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	slog.SetDefault(slog.New(newLogHandler(cfg)))

	fmt.Println(banner)

	slog.Info("starting serenity",
		"server", cfg.ServerURL,
		"team", cfg.TeamName,
		"doctrine", cfg.Doctrine,
		"hitPolicy", cfg.HitPolicy,
	)

	ruleset, err := rules.Doctrine(cfg.Doctrine)
	if err != nil {
		slog.Error("failed to load doctrine", "doctrine", cfg.Doctrine, "error", err)
		os.Exit(1)
	}
	doctrine, err := rules.NewEngine(ruleset)
	if err != nil {
		slog.Error("failed to compile doctrine", "doctrine", cfg.Doctrine, "error", err)
		os.Exit(1)
	}
	engine, err := tactics.NewEngine(tactics.WithDoctrine(doctrine), tactics.WithHitPolicy(cfg.HitPolicy))
	if err != nil {
		slog.Error("failed to build decision engine", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadDoctrine(ctx, hup, engine)

	for {
		if err := play(ctx, cfg, engine); err != nil {
			slog.Error("session failed", "error", err)
		}
		if !cfg.Reconnect || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(redialDelay):
		}
	}
	slog.Info("shutting down")
}

func newLogHandler(cfg config.Config) slog.Handler {
	switch cfg.LogFormat {
	case "json":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	case "pretty":
		return log.NewWithOptions(os.Stdout, log.Options{
			Level:           log.Level(cfg.LogLevel),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	}
}

// reloadDoctrine swaps in the configured doctrine on every SIGHUP. A
// doctrine that fails to load leaves the running one in place.
func reloadDoctrine(ctx context.Context, hup <-chan os.Signal, engine *tactics.Engine) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
		}
		cfg, err := config.Reload(".env", os.Args[1:])
		if err != nil {
			slog.Error("failed to reload config", "error", err)
			continue
		}
		ruleset, err := rules.Doctrine(cfg.Doctrine)
		if err != nil {
			slog.Error("failed to load doctrine", "doctrine", cfg.Doctrine, "error", err)
			continue
		}
		if err := engine.SwapDoctrine(ruleset); err != nil {
			slog.Error("doctrine rejected", "doctrine", cfg.Doctrine, "error", err)
			continue
		}
		slog.Info("doctrine reloaded", "doctrine", cfg.Doctrine)
	}
}

// play runs one connection to the server until it closes or ctx is done.
func play(ctx context.Context, cfg config.Config, engine *tactics.Engine) error {
	c, err := ipc.Dial(ctx, cfg.ServerURL)
	if err != nil {
		return err
	}
	c.Team = cfg.TeamName
	slog.Info("connected", "server", cfg.ServerURL)

	a := agent.New(c, engine, cfg.TeamName)
	a.Register()

	done := make(chan struct{})
	go func() {
		c.ReadLoop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		c.Close()
		<-done
	}
	return nil
}
