// Package config loads runtime settings from flags, the environment and an
// optional .env file. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nstehr/serenity/serenity-core/rules"
	"github.com/nstehr/serenity/serenity-core/tactics"
)

type Config struct {
	ServerURL string
	TeamName  string
	Doctrine  string
	HitPolicy tactics.HitPolicy
	LogLevel  slog.Level
	LogFormat string
	Reconnect bool
}

// LogFormats lists the accepted -log-format values.
var LogFormats = []string{"text", "json", "pretty"}

// LoadEnvFile loads a .env file into the process environment. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Reload re-reads the .env file, overriding variables already set, and parses
// args again. Flags still win over the file.
func Reload(path string, args []string) (Config, error) {
	if err := godotenv.Overload(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reload %s: %w", path, err)
	}
	return Load(args)
}

// Load parses args (without the program name) with defaults taken from the
// environment.
func Load(args []string) (Config, error) {
	fset := flag.NewFlagSet("serenity", flag.ContinueOnError)
	server := fset.String("server", envOr("SERENITY_SERVER", "ws://localhost:3000"), "game server websocket URL")
	team := fset.String("team", envOr("SERENITY_TEAM", "Serenity"), "team name sent on join")
	doctrine := fset.String("doctrine", envOr("SERENITY_DOCTRINE", "standard"),
		"strategy doctrine ("+strings.Join(rules.DoctrineNames(), ", ")+")")
	hitPolicy := fset.String("hit-policy", envOr("SERENITY_HIT_POLICY", string(tactics.HitEnemyOnly)),
		"which hits retarget the fleet (enemy-only, any)")
	level := fset.String("log-level", envOr("SERENITY_LOG_LEVEL", "info"), "debug, info, warn or error")
	format := fset.String("log-format", envOr("SERENITY_LOG_FORMAT", "text"), "log output: "+strings.Join(LogFormats, ", "))
	reconnect := fset.Bool("reconnect", envBool("SERENITY_RECONNECT"), "join the next game after a match ends")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerURL: *server,
		TeamName:  *team,
		Doctrine:  *doctrine,
		LogFormat: *format,
		Reconnect: *reconnect,
	}
	if cfg.TeamName == "" {
		return Config{}, fmt.Errorf("team name must not be empty")
	}
	if _, err := rules.Doctrine(cfg.Doctrine); err != nil {
		return Config{}, err
	}
	p, err := tactics.ParseHitPolicy(*hitPolicy)
	if err != nil {
		return Config{}, err
	}
	cfg.HitPolicy = p
	if err := cfg.LogLevel.UnmarshalText([]byte(*level)); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	if !slices.Contains(LogFormats, cfg.LogFormat) {
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
