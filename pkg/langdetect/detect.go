// Package langdetect decides whether files and Markdown code fences hold
// C# source. It uses go-enry for extension, shebang and classifier based
// detection, after a few C# patterns that are decisive on their own.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// CSharp is the enry name of the C# language.
const CSharp = "C#"

const langText = "text"

//nolint:gochecknoglobals // read-only tables
var (
	csharpTags = map[string]bool{"cs": true, "csharp": true, "c#": true, "c-sharp": true}

	classifierCandidates = []string{
		CSharp, "Java", "C++", "C", "Go", "TypeScript", "JavaScript",
		"Python", "Kotlin", "Swift", "Shell", "JSON", "YAML",
	}

	csharpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*using\s+System(\.[A-Za-z.]+)?\s*;`),
		regexp.MustCompile(`(?m)^\s*namespace\s+[A-Za-z_][\w.]*\s*[{;]`),
		regexp.MustCompile(`static\s+(async\s+)?(void|int|Task)\s+Main\s*\(`),
		regexp.MustCompile(`\{\s*get\s*;\s*(set|init)\s*;\s*\}`),
		regexp.MustCompile(`Console\.Write(Line)?\s*\(`),
	}
)

// IsCSharpTag reports whether a fence info string names C#. Only the
// first word of the info string counts.
func IsCSharpTag(info string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	return csharpTags[strings.ToLower(fields[0])]
}

// ByFilename returns the language for a file name, or "" when the name is
// not decisive.
func ByFilename(path string) string {
	lang, _ := enry.GetLanguageByExtension(path)
	return lang
}

// IsCSharpFile reports whether path has a C# extension.
func IsCSharpFile(path string) bool {
	return ByFilename(path) == CSharp
}

// Skip reports whether a file should be left out of analysis because it
// is vendored or generated (designer files, *.g.cs and the like).
func Skip(path string, content []byte) bool {
	if enry.IsVendor(path) {
		return true
	}
	return content != nil && enry.IsGenerated(path, content)
}

// Detect returns a lower-case language tag for content, "csharp" for C#,
// or "text" when nothing is confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}
	if looksLikeCSharp(content) {
		return "csharp"
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return langText
}

// IsCSharp reports whether Detect would call content C#.
func IsCSharp(content []byte) bool {
	return Detect(content) == "csharp"
}

func looksLikeCSharp(content []byte) bool {
	for _, re := range csharpPatterns {
		if re.Match(content) {
			return true
		}
	}
	return false
}

func normalize(lang string) string {
	switch lang {
	case CSharp:
		return "csharp"
	case "Shell":
		return "bash"
	default:
		return strings.ToLower(lang)
	}
}
