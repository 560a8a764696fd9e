package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/internal/cli"
)

const programSource = `using System;
using System.Text;
using Acme.Billing;

namespace Acme.Tools
{
    class Program
    {
        static void Main(string[] args)
        {
            var total = Sum(args.Length);
            Console.WriteLine(total);
        }
    }
}
`

const brokenSource = "class Broken {\n  void M( }\n"

const readmeSource = "# Usage\n\n```csharp\nusing Acme.Docs;\nclass Sample { void Run() { Start(); } }\n```\n"

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with args and returns stdout, stderr and
// the command error. A config file with only defaults isolates the run
// from any project configuration.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := writeFile(t, t.TempDir(), ".syntree.yml", "parser: native\n")

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_Usings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "usings", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Program.cs")
	assert.Contains(t, stdout, "using Acme.Billing;")
	assert.NotContains(t, stdout, "using System;")
	assert.NotContains(t, stdout, "System.Text")
	assert.Contains(t, stdout, "No syntax errors (1 file parsed)")
}

func TestIntegration_UsingsExcludePrefix(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "usings", "--exclude-prefix", "Acme", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "using System;")
	assert.Contains(t, stdout, "using System.Text;")
	assert.NotContains(t, stdout, "Acme.Billing")
}

func TestIntegration_AllUsings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "usings", "--all-usings", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "using System;")
	assert.Contains(t, stdout, "using System.Text;")
	assert.Contains(t, stdout, "using Acme.Billing;")

	cfgFile := writeFile(t, dir, "unfiltered.yml", "filter_usings: false\n")
	stdout, _, err = execute(t, nil, "usings", "--config", cfgFile, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "using System.Text;")
}

func TestIntegration_Dump(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "A.cs", "class A { }\n")

	tests := []struct {
		name           string
		args           []string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "nodes only",
			args:           []string{"dump", path},
			wantContains:   []string{"Visit: CompilationUnit\n", "  Visit: ClassDeclaration\n"},
			wantNotContain: []string{"Token:"},
		},
		{
			name:         "with tokens",
			args:         []string{"dump", "--tokens", path},
			wantContains: []string{"Visit: ClassDeclaration", `Token: ClassKeyword "class"`, `Token: IdentifierToken "A"`},
		},
		{
			name:         "trivia depth",
			args:         []string{"dump", "--depth", "trivia", path},
			wantContains: []string{"Token: OpenBraceToken"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, nil, testCase.args...)
			require.NoError(t, err)

			for _, want := range testCase.wantContains {
				assert.Contains(t, stdout, want)
			}
			for _, notWant := range testCase.wantNotContain {
				assert.NotContains(t, stdout, notWant)
			}
		})
	}
}

func TestIntegration_Collect(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "collect", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "using Acme.Billing;")
	assert.Contains(t, stdout, "var total = Sum(args.Length)")
	assert.Contains(t, stdout, "Console.WriteLine(total)")
}

func TestIntegration_Query(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "query", "--kind", "Parameter", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "string[] args")

	_, _, err = execute(t, nil, "query", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	_, _, err = execute(t, nil, "query", "--kind", "NoSuchKind", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestIntegration_Describe(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Program")
	assert.Contains(t, stdout, "Main")
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "usings", "--format", "json", path)
	require.NoError(t, err)

	var output struct {
		Version string `json:"version"`
		Files   []struct {
			Path    string `json:"path"`
			Results []struct {
				Usings []struct {
					Kind string `json:"kind"`
					Name string `json:"name"`
				} `json:"usings"`
			} `json:"results"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	require.Len(t, output.Files, 1)
	require.Len(t, output.Files[0].Results, 1)
	usings := output.Files[0].Results[0].Usings
	require.Len(t, usings, 1)
	assert.Equal(t, "UsingDirective", usings[0].Kind)
	assert.Equal(t, "Acme.Billing", usings[0].Name)
}

func TestIntegration_Strict(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Broken.cs", brokenSource)

	stdout, _, err := execute(t, nil, "usings", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file")

	_, _, err = execute(t, nil, "usings", "--strict", path)
	require.ErrorIs(t, err, cli.ErrSyntaxErrors)
	assert.Equal(t, cli.ExitSyntaxErrors, cli.ExitCodeFromError(err))
	assert.True(t, cli.IsReported(err))
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, strings.NewReader(programSource), "usings")
	require.NoError(t, err)
	assert.Contains(t, stdout, "using Acme.Billing;")

	stdout, _, err = execute(t, strings.NewReader("class A { }"), "dump", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Visit: ClassDeclaration")
}

func TestIntegration_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "Program.cs", programSource)
	outPath := filepath.Join(dir, "usings.json")

	stdout, _, err := execute(t, nil, "usings", "--format", "json", "--output", outPath, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "Acme.Billing")
}

func TestIntegration_Markdown(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "README.md", readmeSource)

	stdout, _, err := execute(t, nil, "collect", "--ext", ".md", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "README.md#1")
	assert.Contains(t, stdout, "using Acme.Docs;")
	assert.Contains(t, stdout, "Start()")
}

func TestIntegration_TreeSitterParser(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	stdout, _, err := execute(t, nil, "usings", "--parser", "treesitter", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "using Acme.Billing;")
	assert.NotContains(t, stdout, "using System;")
}

func TestIntegration_UsageErrors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "Program.cs", programSource)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "unknown parser", args: []string{"usings", "--parser", "roslyn", path}, wantCode: cli.ExitInvalidUsage},
		{name: "unknown format", args: []string{"usings", "--format", "sarif", path}, wantCode: cli.ExitInvalidUsage},
		{name: "unknown depth", args: []string{"dump", "--depth", "leaves", path}, wantCode: cli.ExitInvalidUsage},
		{name: "unknown flag", args: []string{"usings", "--fix", path}, wantCode: cli.ExitInvalidUsage},
		{name: "missing path", args: []string{"usings", filepath.Join(t.TempDir(), "missing.cs")}, wantCode: cli.ExitIOError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, nil, testCase.args...)
			require.Error(t, err)
			assert.Equal(t, testCase.wantCode, cli.ExitCodeFromError(err))
		})
	}
}

func TestIntegration_ConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "Program.cs", programSource)
	badConfig := writeFile(t, dir, "bad.yml", "parser: roslyn\n")

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"usings", "--config", badConfig, path})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), ".syntree.yml")

	_, _, err := execute(t, nil, "init", "--output", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# syntree configuration")
	assert.Contains(t, string(data), "exclude_prefix: System")

	_, _, err = execute(t, nil, "init", "--output", target)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, nil, "init", "--output", target, "--force")
	require.NoError(t, err)
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, nil, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# resolved configuration from")
	assert.Contains(t, stdout, "parser: native")

	stdout, _, err = execute(t, nil, "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SYNTREE_PARSER")

	stdout, _, err = execute(t, nil, "config", "--paths")
	require.NoError(t, err)
	assert.Contains(t, stdout, "explicit: ")
	assert.Contains(t, stdout, ".syntree.yml")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, nil, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "usings")
	assert.Contains(t, stdout, "--config")
}
