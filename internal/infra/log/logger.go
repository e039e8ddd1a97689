// Package logs builds the application's slog.Logger from config.
package logs

import (
	"log/slog"
	"os"
	"strings"

	"aevum/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New creates the process-wide slog.Logger. JSON output by default; the
// pretty flag switches to the text handler for local development.
func New(params Params) (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(params.Config.Env.Log.Level)]
	if !ok {
		return nil, errors.Errorf("unknown log level: %s", params.Config.Env.Log.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	if params.Config.Env.Log.Pretty {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
}
