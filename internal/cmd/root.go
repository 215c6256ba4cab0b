package cmd

import (
	"io"
	stdlog "log"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/rttools/internal/logger"
	"github.com/mattn/go-isatty"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// newCommandLogger creates the logger a command reports progress through.
// Verbose runs log at debug level, quiet runs only surface warnings.
func newCommandLogger(w io.Writer, verbose bool) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(w, logger.LevelForVerbosity(verbose))
}

// isStyledOutput reports whether w is a terminal that accepts ANSI styling.
func isStyledOutput(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// routeLibraryLog sends the standard library logger, which the DICOM decoder
// reports parse failures through, to log's debug level. Quiet runs discard it.
// The returned func restores the previous output.
func routeLibraryLog(log *logger.ConsoleLogger) func() {
	prevOut, prevFlags, prevPrefix := stdlog.Writer(), stdlog.Flags(), stdlog.Prefix()

	out := io.Discard
	if log.Level() == logger.LevelForVerbosity(true) {
		out = log.DebugWriter()
	}
	stdlog.SetOutput(out)
	stdlog.SetFlags(0)
	stdlog.SetPrefix("dicom: ")

	return func() {
		stdlog.SetOutput(prevOut)
		stdlog.SetFlags(prevFlags)
		stdlog.SetPrefix(prevPrefix)
	}
}
