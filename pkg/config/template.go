package config

// templateHeader introduces a generated configuration file.
const templateHeader = `# syntree configuration
#
# parser:          native or treesitter
# format:          text, table, json or summary
# walk.depth:      nodes, tokens or trivia
# exclude_prefix:  usings equal to this root or below it are left out
# filter_usings:   false lists every using, exclude_prefix included
# ignore:          glob patterns of files to skip
#
# Environment variables prefixed with SYNTREE_ override these values.`

// GenerateTemplate returns the default configuration as commented YAML.
func GenerateTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Markdown.Enabled = Bool(true)
	cfg.Markdown.Detect = Bool(true)
	cfg.FilterUsings = Bool(true)
	cfg.SkipGenerated = Bool(true)
	return cfg.ToYAMLWithHeader(templateHeader)
}
