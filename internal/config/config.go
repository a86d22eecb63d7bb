// Package config defines the builder configuration and its loading hooks.
//
// Conventions:
// - Keys are flat snake_case and match the koanf struct tags.
// - New returns defaults; Load layers a YAML file and VLAB_ env vars on top.
// - Every loaded or overridden Config must pass Validate.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Input is the submission spreadsheet, .csv, .xlsx or .xlsm.
	Input string `koanf:"input" validate:"required"`

	// Sheet selects the workbook sheet; empty reads the first one.
	Sheet string `koanf:"sheet"`

	// HeaderRows is the number of rows above the data.
	HeaderRows int `koanf:"header_rows" validate:"min=1"`

	// OutputDir receives the leaderboard JSON files.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// Workers bounds concurrent row extraction.
	Workers int `koanf:"workers" validate:"min=1"`

	// TopN is the number of leaders listed per leaderboard in data.json.
	TopN int `koanf:"top_n" validate:"min=1"`

	// MergePolicy decides which original row wins a benchmark slot.
	MergePolicy string `koanf:"merge_policy" validate:"oneof=last_original_wins first_original_wins"`

	// MetricsFile, when set, receives a Prometheus textfile dump after each build.
	MetricsFile string `koanf:"metrics_file"`

	// Addr configures the HTTP listen address of serve, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"min=1"`

	// Watch rebuilds when the input file changes while serving.
	Watch bool `koanf:"watch"`

	// WatchDebounce coalesces bursts of file events into one rebuild.
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"gte=0"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Input:               "VLA_SOTA.xlsx",
		HeaderRows:          2,
		OutputDir:           "leaderboard",
		Workers:             runtime.NumCPU(),
		TopN:                5,
		MergePolicy:         "last_original_wins",
		Addr:                ":9080",
		MaxLeaderboardLimit: 500,
		WatchDebounce:       500 * time.Millisecond,
	}
}

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New()
	// Report koanf keys, which is what users write.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
