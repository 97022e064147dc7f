package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/bom"
	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/predict"
)

// settings is the effective configuration shared by every command
type settings struct {
	level     string
	modelPath string
	timeout   time.Duration
}

func resolveSettings() (settings, error) {
	// Resolve effective log level (from config, env, or flag).
	level := strings.ToLower(strings.TrimSpace(viper.GetString("log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return settings{}, apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}

	secs := viper.GetInt("predict.timeout")
	if secs < 0 {
		return settings{}, apperr.Userf("invalid --timeout %d (expected 0 or more seconds)", secs)
	}

	path := strings.TrimSpace(viper.GetString("model.path"))
	if path == "" {
		path = model.DefaultPath
	}

	return settings{
		level:     level,
		modelPath: path,
		timeout:   time.Duration(secs) * time.Second,
	}, nil
}

func (s settings) quiet() bool { return s.level == "quiet" }

// wireLogging points the internal package loggers at w in debug mode and
// silences them otherwise.
func (s settings) wireLogging(w io.Writer) {
	var dst io.Writer
	if s.level == "debug" {
		dst = w
	}
	model.SetLogger(dst)
	predict.SetLogger(dst)
	bom.SetLogger(dst)
}
