package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/config"
)

// envVarPrefix is the prefix for all syntree environment variables.
const envVarPrefix = "SYNTREE_"

// envSetter applies one environment value to the configuration.
type envSetter func(cfg *config.Config, value string) error

// envVar describes one supported environment variable.
type envVar struct {
	suffix      string
	description string
	set         envSetter
}

// envVars lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"PARSER", "Tree builder: native or treesitter", func(cfg *config.Config, v string) error {
		cfg.Parser = config.Parser(v)
		return nil
	}},
	{"FORMAT", "Output format: text, table, json or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = jobs
		return nil
	}},
	{"EXTENSIONS", "Comma-separated file extensions to discover", func(cfg *config.Config, v string) error {
		cfg.Extensions = parseSliceValue(v)
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"WALK_DEPTH", "Walk depth: nodes, tokens or trivia", func(cfg *config.Config, v string) error {
		cfg.Walk.Depth = v
		return nil
	}},
	{"EXCLUDE_PREFIX", "Using root left out by the using filter", func(cfg *config.Config, v string) error {
		cfg.ExcludePrefix = v
		return nil
	}},
	{"FILTER_USINGS", "Hide usings under the exclude prefix: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.FilterUsings = config.Bool(b)
	})},
	{"MARKDOWN_ENABLED", "Analyze C# snippets in Markdown: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Markdown.Enabled = config.Bool(b)
	})},
	{"MARKDOWN_LANGUAGES", "Comma-separated fence languages treated as C#", func(cfg *config.Config, v string) error {
		cfg.Markdown.Languages = parseSliceValue(v)
		return nil
	}},
	{"MARKDOWN_DETECT", "Classify unlabeled fences by content: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Markdown.Detect = config.Bool(b)
	})},
	{"SKIP_GENERATED", "Leave out generated and vendored files: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.SkipGenerated = config.Bool(b)
	})},
	{"DETECT_LANGUAGE", "Classify extension-less files by content: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.DetectLanguage = b
	})},
}

func boolSetter(set func(cfg *config.Config, b bool)) envSetter {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SYNTREE_ (e.g., SYNTREE_PARSER).
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envVarPrefix+ev.suffix] = ev.description
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, envVarPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}
