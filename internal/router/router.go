// Package router computes the ordered set of agents to invoke for a
// classified file (C2). It is a pure function: the teacher's
// equivalent, internal/shards/matching.go's MatchSpecialistsForReview,
// matches specialists against a live registry; here the table is static
// since the agent roster is fixed and registered explicitly in a table
// keyed by name.
package router

import "github.com/codenerd-labs/revcrew/internal/classifier"

// Agent names, shared with the internal/agent registry.
const (
	Security      = "security"
	Quality       = "quality"
	Performance   = "performance"
	Testing       = "testing"
	Documentation = "documentation"
	Style         = "style"
)

var generalPurpose = []string{Security, Quality, Performance, Testing, Documentation, Style}

var generalPurposeTypes = map[classifier.Type]bool{
	classifier.TypePython:     true,
	classifier.TypeJavaScript: true,
	classifier.TypeTypeScript: true,
	classifier.TypeGo:         true,
	classifier.TypeRust:       true,
	classifier.TypeJava:       true,
	classifier.TypeRuby:       true,
	classifier.TypePHP:        true,
}

var markupTypes = map[classifier.Type]bool{
	classifier.TypeHTML: true,
	classifier.TypeCSS:  true,
	classifier.TypeSCSS: true,
	classifier.TypeSass: true,
}

var dataTypes = map[classifier.Type]bool{
	classifier.TypeJSON: true,
	classifier.TypeYAML: true,
	classifier.TypeTOML: true,
	classifier.TypeXML:  true,
}

// Route returns the ordered agent names to invoke for a classified
// file, per the first-match table below. The order is stable and
// deterministic for identical inputs, which matters for stream-event
// ordering and for deterministic dedup concatenation.
func Route(c classifier.Classification) []string {
	switch {
	case c.IsDocumentation:
		return []string{Documentation, Style}
	case c.IsConfig:
		return []string{Security, Documentation, Style}
	case c.IsTest:
		return []string{Quality, Testing, Documentation, Style}
	case generalPurposeTypes[c.Type]:
		return append([]string(nil), generalPurpose...)
	case c.Type == classifier.TypeSQL:
		return []string{Security, Quality, Performance, Documentation, Style}
	case markupTypes[c.Type]:
		return []string{Quality, Documentation, Style}
	case c.Type == classifier.TypeShell:
		return []string{Security, Quality, Documentation, Style}
	case dataTypes[c.Type]:
		return []string{Security, Documentation, Style}
	default: // unknown, and any remaining text-ish type
		return []string{Security, Quality, Documentation, Style}
	}
}
