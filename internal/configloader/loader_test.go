package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolated returns options that read nothing outside dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	path := writeConfig(t, root, ".syntree.yml", `parser: treesitter
walk:
  depth: tokens
markdown:
  enabled: false
`)
	nested := filepath.Join(root, "src", "App")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.ParserTreeSitter, result.Config.Parser)
	assert.Equal(t, config.DepthTokens, result.Config.Walk.Depth)
	assert.False(t, result.Config.Markdown.IsEnabled())
	assert.Equal(t, []string{".cs"}, result.Config.Extensions, "defaults survive")
	assert.Equal(t, "System", result.Config.ExcludePrefix)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".syntree.yml", "parser: treesitter\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Empty(t, result.Paths.Project)
	assert.Equal(t, config.ParserNative, result.Config.Parser)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "format: json\njobs: 2\n")
	explicit := writeConfig(t, t.TempDir(), "custom.yml", "format: table\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
	assert.Equal(t, config.FormatTable, result.Config.Format)
	assert.Equal(t, 2, result.Config.Jobs)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "format: json\nskip_generated: true\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Format:        config.FormatSummary,
		SkipGenerated: config.Bool(false),
		Strict:        true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatSummary, result.Config.Format)
	assert.False(t, result.Config.SkipsGenerated())
	assert.True(t, result.Config.Strict)
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "parser: native\n")

	t.Setenv("SYNTREE_PARSER", "treesitter")
	t.Setenv("SYNTREE_IGNORE", "obj/**, bin/**")
	t.Setenv("SYNTREE_MARKDOWN_DETECT", "false")

	opts := isolated(dir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Ignore: []string{"gen/**"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.ParserTreeSitter, result.Config.Parser, "env beats project file")
	assert.Equal(t, []string{"gen/**"}, result.Config.Ignore, "CLI beats env")
	assert.False(t, result.Config.Markdown.DetectsUnlabeled())
}

func TestLoad_UserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	userPath := writeConfig(t, home, filepath.Join("syntree", "config.yaml"), "exclude_prefix: Microsoft\njobs: 3\n")

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "jobs: 5\n")

	opts := isolated(dir)
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, userPath, result.Paths.User)
	assert.Equal(t, "Microsoft", result.Config.ExcludePrefix)
	assert.Equal(t, 5, result.Config.Jobs, "project beats user")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "parser", content: "parser: roslyn\n", field: "parser"},
		{name: "format", content: "format: sarif\n", field: "format"},
		{name: "depth", content: "walk:\n  depth: leaves\n", field: "walk.depth"},
		{name: "jobs", content: "jobs: -1\n", field: "jobs"},
		{name: "extension", content: "extensions: [cs]\n", field: "extensions[0]"},
		{name: "ignore", content: "ignore: [\"[\"]\n", field: "ignore[0]"},
		{name: "exclude prefix", content: "exclude_prefix: System..IO\n", field: "exclude_prefix"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
			path := writeConfig(t, dir, ".syntree.yml", testCase.content)

			_, err := Load(context.Background(), isolated(dir))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, testCase.field, verr.Field)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "checks:\n  usings: false\n")

	_, err := Load(context.Background(), isolated(dir))
	require.ErrorContains(t, err, "load project config")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Markdown: config.MarkdownConfig{Enabled: config.Bool(false)}, Jobs: 4},
		&config.Config{Extensions: []string{".cs", ".md"}, DetectLanguage: true},
	)

	assert.False(t, merged.Markdown.IsEnabled())
	assert.Equal(t, 4, merged.Jobs)
	assert.Equal(t, []string{".cs", ".md"}, merged.Extensions)
	assert.True(t, merged.DetectLanguage)
	assert.Equal(t, config.ParserNative, merged.Parser)

	assert.Nil(t, MergeAll())
}

func TestLoad_FilterUsingsOff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeConfig(t, dir, ".syntree.yml", "filter_usings: false\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.False(t, result.Config.FiltersUsings())
	assert.Equal(t, "System", result.Config.ExcludePrefix)

	// A later layer can switch the filter back on.
	merged := MergeAll(result.Config, &config.Config{FilterUsings: config.Bool(true)})
	assert.True(t, merged.FiltersUsings())
	assert.True(t, config.NewConfig().FiltersUsings())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{".cs", ".md"}
	cfg.Markdown.Enabled = config.Bool(false)

	result := Validate(cfg)
	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Contains(t, result.AllMessages()[0], "warning: extensions")
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{name: "jobs", env: "SYNTREE_JOBS", value: "many"},
		{name: "bool", env: "SYNTREE_SKIP_GENERATED", value: "maybe"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testCase.env, testCase.value)

			err := LoadFromEnv(config.NewConfig())
			require.ErrorContains(t, err, testCase.env)
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	names := EnvVarNames()
	assert.Contains(t, names, "SYNTREE_PARSER")
	assert.Contains(t, names, "SYNTREE_EXCLUDE_PREFIX")
	assert.Len(t, ListEnvVars(), len(names))
}
