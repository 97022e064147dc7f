package bom

import (
	"io"

	"github.com/idlab-discover/ecoscore-cli/internal/logging"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "BOM:", PrefixColor: ui.FgMagenta, Field: "ref"}

// SetLogger sets an optional destination for BOM logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(ref string, format string, args ...any) {
	logger.Logf(ref, format, args...)
}
