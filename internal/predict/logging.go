package predict

import (
	"io"

	"github.com/idlab-discover/ecoscore-cli/internal/logging"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Predict:", PrefixColor: ui.FgGreen, Field: "tier"}

// SetLogger sets an optional destination for prediction logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(tier string, format string, args ...any) {
	logger.Logf(tier, format, args...)
}
