package configloader

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/yaklabco/syntree/pkg/config"
	"github.com/yaklabco/syntree/pkg/fsutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "walk.depth").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownParsers = []config.Parser{config.ParserNative, config.ParserTreeSitter}
	knownFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary,
	}
	knownDepths = []string{config.DepthNodes, config.DepthTokens, config.DepthTrivia}
)

// Validate checks a configuration for errors and warnings. Empty fields
// are valid; they mean the value comes from a lower layer.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Parser != "" && !IsValidParser(cfg.Parser) {
		result.fail("parser", cfg.Parser, "invalid parser %q; must be one of: native, treesitter", cfg.Parser)
	}
	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Walk.Depth != "" && !IsValidDepth(cfg.Walk.Depth) {
		result.fail("walk.depth", cfg.Walk.Depth, "invalid walk depth %q; must be one of: nodes, tokens, trivia", cfg.Walk.Depth)
	}
	if cfg.ExcludePrefix != "" && !isQualifiedName(cfg.ExcludePrefix) {
		result.fail("exclude_prefix", cfg.ExcludePrefix, "invalid namespace %q; expected dotted identifiers such as System or Microsoft.Extensions", cfg.ExcludePrefix)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := fsutil.CompileGlobs([]string{pattern}); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}

	for i, lang := range cfg.Markdown.Languages {
		if strings.TrimSpace(lang) == "" {
			result.fail(fmt.Sprintf("markdown.languages[%d]", i), lang, "language must not be empty")
		}
	}

	if !cfg.Markdown.IsEnabled() && slices.ContainsFunc(cfg.Extensions, isMarkdownExt) {
		result.warn("extensions", cfg.Extensions, "Markdown files are discovered but markdown.enabled is false; they will be parsed as C#")
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidParser returns true if the parser name is known.
func IsValidParser(p config.Parser) bool {
	return slices.Contains(knownParsers, p)
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return slices.Contains(knownFormats, f)
}

// IsValidDepth returns true if the walk depth is valid.
func IsValidDepth(depth string) bool {
	return slices.Contains(knownDepths, depth)
}

func isMarkdownExt(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".md" || ext == ".markdown"
}

// isQualifiedName reports whether name is dot-separated C# identifiers.
func isQualifiedName(name string) bool {
	for part := range strings.SplitSeq(name, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}
