package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/rbrseries/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.BestOf, convey.ShouldEqual, 3)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "text")
				convey.So(cfg.BonusTable(), convey.ShouldResemble, map[int]int{4: 15, 5: 30})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RBR_BEST_OF", "4")
			_ = os.Setenv("RBR_WORKER_COUNT", "2")
			_ = os.Setenv("RBR_STRICT_NAMES", "true")
			_ = os.Setenv("RBR_OUTPUT_FORMAT", "csv")
			_ = os.Setenv("RBR_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BestOf, convey.ShouldEqual, 4)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)
				convey.So(cfg.StrictNames, convey.ShouldBeTrue)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "csv")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
best_of: 2
name_distance: 3
metrics_file: /tmp/rbr.prom
bonus:
  - races: 3
    points: 10
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RBR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BestOf, convey.ShouldEqual, 2)
				convey.So(cfg.NameDistance, convey.ShouldEqual, 3)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/rbr.prom")
			})

			convey.Convey("Then the file's bonus list replaces the default", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BonusTable(), convey.ShouldResemble, map[int]int{3: 10})
			})
		})

		convey.Convey("When env overrides the file", func() {
			tmpFile := createTempConfigFile("best_of: 2\noutput_format: yaml\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RBR_CONFIG", tmpFile)
			_ = os.Setenv("RBR_BEST_OF", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BestOf, convey.ShouldEqual, 5)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "yaml")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("RBR_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a loaded value is out of range", func() {
			_ = os.Setenv("RBR_BEST_OF", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a number is malformed", func() {
			_ = os.Setenv("RBR_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "rbr-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}

func clearConfigEnvVars() {
	for _, name := range []string{
		"RBR_CONFIG",
		"RBR_LOG_LEVEL",
		"RBR_BEST_OF",
		"RBR_WORKER_COUNT",
		"RBR_NAME_DISTANCE",
		"RBR_STRICT_NAMES",
		"RBR_OUTPUT_FORMAT",
		"RBR_METRICS_FILE",
	} {
		_ = os.Unsetenv(name)
	}
}
