// Package classifier maps a file path to a language tag and to the
// test/config/documentation predicates the router consults (C1).
//
// The dispatch table mirrors the per-language parser-selection tables
// in the teacher's world scanner (internal/world/ast_treesitter.go),
// generalized from "which tree-sitter grammar" to "which language tag".
package classifier

import (
	"path/filepath"
	"strings"
)

// Type is the language/category tag attached to a file.
type Type string

const (
	TypePython            Type = "python"
	TypeJavaScript         Type = "javascript"
	TypeTypeScript         Type = "typescript"
	TypeGo                 Type = "go"
	TypeRust               Type = "rust"
	TypeJava               Type = "java"
	TypeRuby               Type = "ruby"
	TypePHP                Type = "php"
	TypeSQL                Type = "sql"
	TypeShell              Type = "shell"
	TypeHTML               Type = "html"
	TypeCSS                Type = "css"
	TypeSCSS               Type = "scss"
	TypeSass               Type = "sass"
	TypeJSON               Type = "json"
	TypeYAML               Type = "yaml"
	TypeTOML               Type = "toml"
	TypeINI                Type = "ini"
	TypeConfig             Type = "config"
	TypeMarkdown           Type = "markdown"
	TypeRestructuredText   Type = "restructuredtext"
	TypeText               Type = "text"
	TypeXML                Type = "xml"
	TypeUnknown            Type = "unknown"
)

// extensionTable is the extension → language tag mapping.
var extensionTable = map[string]Type{
	"py":   TypePython,
	"js":   TypeJavaScript,
	"jsx":  TypeJavaScript,
	"mjs":  TypeJavaScript,
	"cjs":  TypeJavaScript,
	"ts":   TypeTypeScript,
	"tsx":  TypeTypeScript,
	"go":   TypeGo,
	"rs":   TypeRust,
	"java": TypeJava,
	"rb":   TypeRuby,
	"php":  TypePHP,
	"sql":  TypeSQL,
	"sh":   TypeShell,
	"bash": TypeShell,
	"zsh":  TypeShell,
	"html": TypeHTML,
	"htm":  TypeHTML,
	"css":  TypeCSS,
	"scss": TypeSCSS,
	"sass": TypeSass,
	"json": TypeJSON,
	"yaml": TypeYAML,
	"yml":  TypeYAML,
	"toml": TypeTOML,
	"ini":  TypeINI,
	"cfg":  TypeConfig,
	"conf": TypeConfig,
	"env":  TypeConfig,
	"md":   TypeMarkdown,
	"rst":  TypeRestructuredText,
	"txt":  TypeText,
	"xml":  TypeXML,
}

// testMarkers are substrings (case-insensitive) identifying test files.
var testMarkers = []string{"test_", "_test.", ".test.", ".spec.", "tests/", "/test/"}

// configMarkers are substrings (case-insensitive) identifying config files.
var configMarkers = []string{
	"config", "settings", ".env", "dockerfile", "docker-compose",
	"requirements", "package.json", "tsconfig", "webpack", "babel",
	"eslint", "pytest", "setup.", "pyproject.toml",
}

// docMarkers are substrings (case-insensitive) identifying documentation paths.
var docMarkers = []string{"readme", "changelog", "license", "contributing", "docs/", "/doc/"}

// Classification is the result of classifying a path.
type Classification struct {
	Type          Type
	IsTest        bool
	IsConfig      bool
	IsDocumentation bool
}

// Classify maps path to its Type and predicate flags.
// Predicates are checked documentation -> config -> test, first match wins;
// the language tag is always computed independently from the extension.
func Classify(path string) Classification {
	lang := languageOf(path)
	lower := strings.ToLower(path)

	c := Classification{Type: lang}

	if isDocumentation(lower, lang) {
		c.IsDocumentation = true
		return c
	}
	if containsAny(lower, configMarkers) {
		c.IsConfig = true
		return c
	}
	if containsAny(lower, testMarkers) {
		c.IsTest = true
		return c
	}
	return c
}

func languageOf(path string) Type {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if t, ok := extensionTable[ext]; ok {
		return t
	}
	return TypeUnknown
}

func isDocumentation(lowerPath string, lang Type) bool {
	switch lang {
	case TypeMarkdown, TypeRestructuredText, TypeText:
	default:
		return false
	}
	return containsAny(lowerPath, docMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
