package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/syntree/internal/ui/pretty"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	// SummaryOrderCodes prints the diagnostic code table first.
	SummaryOrderCodes SummaryOrder = "codes"
	// SummaryOrderFiles prints the file table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto", "always" or "never".
	Color string

	// ShowContext prints the source line under each syntax error.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact minifies JSON output.
	Compact bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        pretty.ColorAuto,
		ShowContext:  true,
		ShowSummary:  true,
		SummaryOrder: SummaryOrderCodes,
	}
}
