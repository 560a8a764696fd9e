package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/internal/ui/pretty"
	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/runner"
	"github.com/yaklabco/syntree/pkg/syntax"
)

func tableResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "src/Program.cs",
				Results: []*analyze.FileResult{{
					Path: "src/Program.cs",
					Usings: []analyze.Entry{{
						Kind: syntax.KindUsingDirective, Name: "Acme.Billing", Text: "using Acme.Billing;",
						StartLine: 2, StartColumn: 1,
					}},
					Invocations: []analyze.Entry{{
						Kind: syntax.KindInvocationExpression, Name: "Console.WriteLine", Text: "Console.WriteLine(total)",
						StartLine: 10, StartColumn: 13,
					}},
				}},
			},
			{
				Path: "README.md",
				Results: []*analyze.FileResult{{
					Path:        "README.md",
					Snippet:     2,
					Diagnostics: []analyze.Diagnostic{{Code: "CS1002", Message: "; expected", StartLine: 14, StartColumn: 9}},
				}},
			},
			{Path: "Form.Designer.cs", Skipped: true},
		},
	}
}

func TestResultRows(t *testing.T) {
	t.Parallel()

	result := tableResult()

	rows := pretty.ResultRows(result.Files[0].Results[0])
	require.Len(t, rows, 2)
	assert.Equal(t, pretty.TableRow{
		File:     "src/Program.cs",
		Location: "2:1",
		Kind:     "UsingDirective",
		Text:     "Acme.Billing: using Acme.Billing;",
	}, rows[0])
	assert.Equal(t, "10:13", rows[1].Location)

	rows = pretty.ResultRows(result.Files[1].Results[0])
	require.Len(t, rows, 1)
	assert.Equal(t, pretty.TableRow{
		File:     "README.md#2",
		Location: "14:9",
		Kind:     "CS1002",
		Text:     "; expected",
		IsError:  true,
	}, rows[0])
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	output := formatter.FormatTable(tableResult())

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.True(t, strings.HasPrefix(lines[0], " FILE "))
	assert.Contains(t, lines[0], "LOC")
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[0], "TEXT")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
	assert.Contains(t, lines[2], "src/Program.cs")
	assert.Contains(t, lines[2], "UsingDirective")
	assert.Contains(t, lines[3], "Console.WriteLine(total)")
	assert.True(t, strings.HasPrefix(lines[4], "---"))
	assert.Contains(t, lines[5], "README.md#2")
	assert.Contains(t, lines[5], "CS1002")
	assert.True(t, strings.HasPrefix(lines[6], "==="))
	assert.Contains(t, lines[7], "Legend")

	assert.Equal(t, len(lines[1]), len(lines[4]))
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))
}

func TestFormatTable_Truncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 200)
	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "A.cs",
		Results: []*analyze.FileResult{{
			Path:    strings.Repeat("dir/", 20) + "A.cs",
			Matches: []analyze.Entry{{Kind: syntax.KindBlock, Text: long, StartLine: 1, StartColumn: 1}},
		}},
	}}}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	output := formatter.FormatTable(result)

	assert.Contains(t, output, "...dir/dir/dir/dir/A.cs")
	assert.Contains(t, output, "x...")
	assert.NotContains(t, output, long)
}

func TestFormatTableSummary(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	summary := formatter.FormatTableSummary(runner.Stats{FilesProcessed: 2, Nodes: 40, DiagnosticsTotal: 1}, "12ms")
	assert.Equal(t, " 2 files parsed | 40 nodes | 1 syntax error | 12ms", summary)
}
