package model

import (
	"io"

	"github.com/idlab-discover/ecoscore-cli/internal/logging"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Model:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for model loading logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(path string, format string, args ...any) {
	logger.Logf(path, format, args...)
}
