package configloader

import "github.com/yaklabco/syntree/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalars: override wins when it is non-zero
//   - Optional booleans: override wins when it is set, so false can disable
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Parser != "" {
		result.Parser = override.Parser
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Walk.Depth != "" {
		result.Walk.Depth = override.Walk.Depth
	}
	if override.ExcludePrefix != "" {
		result.ExcludePrefix = override.ExcludePrefix
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// Plain booleans can only be switched on by a later layer.
	if override.DetectLanguage {
		result.DetectLanguage = true
	}
	if override.Strict {
		result.Strict = true
	}

	if override.Markdown.Enabled != nil {
		result.Markdown.Enabled = override.Markdown.Enabled
	}
	if override.Markdown.Detect != nil {
		result.Markdown.Detect = override.Markdown.Detect
	}
	if override.FilterUsings != nil {
		result.FilterUsings = override.FilterUsings
	}
	if override.SkipGenerated != nil {
		result.SkipGenerated = override.SkipGenerated
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Markdown.Languages != nil {
		result.Markdown.Languages = override.Markdown.Languages
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
