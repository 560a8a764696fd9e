package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/collect"
)

const traceIndent = "  "

// FormatEntry formats a collected node as "line:col  Kind  name  text".
// The name column is omitted when it is empty or equal to the text.
func (s *Styles) FormatEntry(entry analyze.Entry) string {
	var builder strings.Builder

	builder.WriteString("  ")
	builder.WriteString(s.Location.Render(fmt.Sprintf("%d:%d", entry.StartLine, entry.StartColumn)))
	builder.WriteString("  ")
	builder.WriteString(s.NodeKind.Render(entry.Kind.String()))
	if entry.Name != "" && entry.Name != entry.Text {
		builder.WriteString("  ")
		builder.WriteString(s.Name.Render(entry.Name))
	}
	builder.WriteString("  ")
	builder.WriteString(s.Message.Render(singleLine(entry.Text)))
	builder.WriteString("\n")

	return builder.String()
}

// FormatTraceEntry formats one visit of a kind trace, indented by its
// depth in the tree.
func (s *Styles) FormatTraceEntry(entry collect.TraceEntry) string {
	indent := strings.Repeat(traceIndent, entry.Level)
	if entry.IsToken {
		return indent + s.Dim.Render("Token: ") + s.TokenKind.Render(entry.Token.String()) +
			" " + s.TokenText.Render(strconv.Quote(entry.Text)) + "\n"
	}
	return indent + s.Dim.Render("Visit: ") + s.NodeKind.Render(entry.Node.String()) + "\n"
}

// FormatDescription formats a structural description as labelled lines.
// errMsg, when set, is reported where the description stopped.
func (s *Styles) FormatDescription(desc *collect.Description, errMsg string) string {
	var builder strings.Builder

	line := func(label string, value any) {
		fmt.Fprintf(&builder, "  %-26s %s\n", label+":", s.SummaryValue.Render(fmt.Sprint(value)))
	}

	if desc != nil {
		line("Root kind", desc.RootKind)
		line("Root members", desc.MemberCount)
		line("Usings", strings.Join(desc.Usings, ", "))
		line("First member", desc.FirstMemberKind)
		line("Namespace members", desc.NamespaceMemberCount)
		line("Namespace first member", desc.NamespaceFirstMemberKind)
		if desc.ClassName != "" {
			line("Class", s.Name.Render(desc.ClassName))
			line("Class members", desc.ClassMemberCount)
			line("Class first member", desc.ClassFirstMemberKind)
		}
		if desc.Method != nil {
			line("Method", s.Name.Render(desc.Method.Name))
			line("Return type", desc.Method.ReturnType)
			line("Parameters", len(desc.Method.Parameters))
		}
		if desc.FirstParameter != "" {
			line("First parameter", desc.FirstParameter)
			line("Parameter identity", desc.ParameterIdentity)
		}
	}

	if errMsg != "" {
		builder.WriteString("  " + s.Failure.Render("stopped: ") + s.Message.Render(errMsg) + "\n")
	}

	return builder.String()
}

// singleLine collapses runs of whitespace so multi-line nodes fit one row.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
