package agent

import "github.com/codenerd-labs/revcrew/internal/router"

// promptTemplate is the per-specialist instruction shell; the actual
// prompt copy is a content-engineering concern out of scope for this
// orchestration layer — these are minimal, functional placeholders
// carrying the variable slots every gateway call fills in, in the
// same "domain focus + output contract" shape as the teacher's
// FormatSpecialistReviewTask (internal/shards/reviewer/specialist_review.go).
func promptTemplate(domain, focus string) string {
	return "You are the " + domain + " reviewer for {file_path} (" + focus + ").\n\n" +
		"File type: {file_type}\n\nCode:\n{code}\n\nDiff:\n{diff}\n\n{format_instructions}"
}

// Registry is the fixed table of specialist agents, registered
// explicitly in a table keyed by name rather than discovered via
// runtime reflection. Keys match the router's agent name constants.
var Registry = map[string]Definition{
	router.Security: {
		Name:           router.Security,
		PromptTemplate: promptTemplate("security", "injection, secrets, auth, unsafe deserialization"),
	},
	router.Quality: {
		Name:           router.Quality,
		PromptTemplate: promptTemplate("quality", "maintainability, duplication, naming, complexity"),
	},
	router.Performance: {
		Name:           router.Performance,
		PromptTemplate: promptTemplate("performance", "algorithmic complexity, allocations, N+1 patterns"),
	},
	router.Testing: {
		Name:           router.Testing,
		PromptTemplate: promptTemplate("testing", "coverage gaps, missing edge cases, flaky patterns"),
	},
	router.Documentation: {
		Name:           router.Documentation,
		PromptTemplate: promptTemplate("documentation", "missing or stale comments, unclear public APIs"),
	},
	router.Style: {
		Name:           router.Style,
		PromptTemplate: promptTemplate("style", "formatting, idiomatic usage, lint conventions"),
	},
}

// Lookup returns the registered Definition for name, and whether it
// was found.
func Lookup(name string) (Definition, bool) {
	d, ok := Registry[name]
	return d, ok
}
