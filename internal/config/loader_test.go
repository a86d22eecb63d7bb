package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/vlaboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "leaderboard")
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("VLAB_ADDR", ":8080")
			t.Setenv("VLAB_OUTPUT_DIR", "/tmp/out")
			t.Setenv("VLAB_WORKERS", "16")
			t.Setenv("VLAB_WATCH", "true")
			t.Setenv("VLAB_WATCH_DEBOUNCE", "2s")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/tmp/out")
				convey.So(cfg.Workers, convey.ShouldEqual, 16)
				convey.So(cfg.Watch, convey.ShouldBeTrue)
				convey.So(cfg.WatchDebounce, convey.ShouldEqual, 2*time.Second)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, `
input: sheets/VLA_SOTA.csv
output_dir: site/data
sheet: Leaderboard
top_n: 10
merge_policy: first_original_wins
`)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "sheets/VLA_SOTA.csv")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "site/data")
				convey.So(cfg.Sheet, convey.ShouldEqual, "Leaderboard")
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.MergePolicy, convey.ShouldEqual, "first_original_wins")
				convey.So(cfg.HeaderRows, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the file comes from VLAB_CONFIG and env overrides it", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, "top_n: 10\naddr: \":9090\"\n")
			t.Setenv("VLAB_CONFIG", path)
			t.Setenv("VLAB_ADDR", ":8080")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			clearConfigEnvVars(t)
			path := createTempConfigFile(t, `invalid: yaml: content: [`)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid value", func() {
			clearConfigEnvVars(t)
			t.Setenv("VLAB_HEADER_ROWS", "0")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "header_rows")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// createTempConfigFile creates a temporary YAML config file with the given content.
func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "vlaboard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// clearConfigEnvVars unsets every VLAB_ variable for the rest of the test.
func clearConfigEnvVars(t *testing.T) {
	for _, key := range []string{
		"VLAB_CONFIG", "VLAB_ADDR", "VLAB_OUTPUT_DIR", "VLAB_WORKERS",
		"VLAB_WATCH", "VLAB_WATCH_DEBOUNCE", "VLAB_HEADER_ROWS",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
