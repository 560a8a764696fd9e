package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.NodeKind.Render("test"),
		styles.TokenText.Render("test"),
	} {
		assert.Equal(t, "test", style, "no-color styles should not add formatting")
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may drop ANSI codes without a terminal, so only the text is checked.
	assert.Contains(t, styles.NodeKind.Render("ClassDeclaration"), "ClassDeclaration")
	assert.Contains(t, styles.Section.Render("Usings"), "Usings")
	assert.Contains(t, styles.TableErrorRow.Render("row"), "row")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{name: "always", mode: pretty.ColorAlways, want: true},
		{name: "never", mode: pretty.ColorNever, want: false},
		{name: "auto without terminal", mode: pretty.ColorAuto, want: false},
		{name: "empty defaults to auto", mode: "", want: false},
		{name: "unknown defaults to auto", mode: "sometimes", want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, pretty.IsColorEnabled(testCase.mode, &buf))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, os.Stdout))
}
