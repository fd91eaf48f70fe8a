// Package clilog wires structured logging into a cobra command, the way
// argonautbench sets up its own diagnostics: a small [Config] registers
// --log-level/--log-format flags and builds a [log/slog] handler from them
// at startup.
package clilog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// Format is the log output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	ErrUnknownLogLevel  = errors.New("clilog: unknown log level")
	ErrUnknownLogFormat = errors.New("clilog: unknown log format")
)

// Config holds the CLI-configurable level/format pair.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config with the conventional defaults.
func NewConfig() *Config {
	return &Config{Level: "info", Format: string(FormatText)}
}

// RegisterFlags adds --log-level and --log-format to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, "log-level", c.Level, "log level: debug, info, warn, error")
	flags.StringVar(&c.Format, "log-format", c.Format, "log format: text, json")
}

// NewHandler builds a slog.Handler writing to w using the configured
// level and format.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts), nil
	}
	return slog.NewTextHandler(w, opts), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}
}

func parseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if f == FormatText || f == FormatJSON {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}
