// Package config defines core configuration types for syntree.
// These types are pure data structures with no dependency on the loader.
package config

// Parser selects the tree builder.
type Parser string

const (
	ParserNative     Parser = "native"
	ParserTreeSitter Parser = "treesitter"
)

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Walk depths accepted by WalkConfig.Depth.
const (
	DepthNodes  = "nodes"
	DepthTokens = "tokens"
	DepthTrivia = "trivia"
)

// DefaultExcludePrefix is the using root left out by default.
const DefaultExcludePrefix = "System"

// MarkdownConfig controls analysis of C# snippets in Markdown files.
type MarkdownConfig struct {
	// Enabled parses fenced C# blocks of Markdown inputs.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Languages are the fence info strings treated as C#.
	Languages []string `yaml:"languages,omitempty"`

	// Detect classifies unlabeled fences by content.
	Detect *bool `yaml:"detect,omitempty"`
}

// IsEnabled reports whether Markdown snippets are analyzed. Unset means true.
func (m MarkdownConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// DetectsUnlabeled reports whether unlabeled fences are classified. Unset means true.
func (m MarkdownConfig) DetectsUnlabeled() bool {
	return m.Detect == nil || *m.Detect
}

// WalkConfig controls the default traversal.
type WalkConfig struct {
	// Depth is "nodes", "tokens" or "trivia".
	Depth string `yaml:"depth,omitempty"`
}

// Config is the root configuration structure for syntree.
type Config struct {
	// Parser selects the tree builder ("native" or "treesitter").
	Parser Parser `yaml:"parser,omitempty"`

	// Extensions are the file extensions discovered in directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Markdown configures snippet extraction.
	Markdown MarkdownConfig `yaml:"markdown,omitempty"`

	// Walk configures the default traversal depth.
	Walk WalkConfig `yaml:"walk,omitempty"`

	// ExcludePrefix is the namespace root whose usings are left out.
	ExcludePrefix string `yaml:"exclude_prefix,omitempty"`

	// FilterUsings hides the usings under ExcludePrefix. Unset means true;
	// false lists every using directive.
	FilterUsings *bool `yaml:"filter_usings,omitempty"`

	// SkipGenerated leaves out vendored and generated files. Unset means true.
	SkipGenerated *bool `yaml:"skip_generated,omitempty"`

	// DetectLanguage classifies extension-less files by content.
	DetectLanguage bool `yaml:"detect_language,omitempty"`

	// CLI-level options (not persisted to config files).

	// Strict fails the run when any tree has syntax errors.
	Strict bool `yaml:"-"`

	// Output is the file results are written to instead of stdout.
	Output string `yaml:"-"`
}

// FiltersUsings reports whether usings under ExcludePrefix are hidden.
func (c *Config) FiltersUsings() bool {
	return c.FilterUsings == nil || *c.FilterUsings
}

// SkipsGenerated reports whether generated files are left out.
func (c *Config) SkipsGenerated() bool {
	return c.SkipGenerated == nil || *c.SkipGenerated
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Parser:        ParserNative,
		Extensions:    []string{".cs"},
		Format:        FormatText,
		Markdown:      MarkdownConfig{Languages: []string{"cs", "csharp", "c#"}},
		Walk:          WalkConfig{Depth: DepthNodes},
		ExcludePrefix: DefaultExcludePrefix,
	}
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
