package dedup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

func line(n int) *int { return &n }

// Security and quality both report at line 12 with similar
// descriptions: they fuse into one issue.
func TestDeduplicate_ClusterMergeAcrossAgents(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "security", Severity: issue.SeverityHigh, Line: line(12), Description: "hard-coded credential exposes secret", Confidence: 1.0},
		{Agent: "quality", Severity: issue.SeverityMedium, Line: line(12), Description: "secret literal committed in source", Confidence: 1.0},
	}

	out := Deduplicate(issues)
	require.Len(t, out, 1)

	fused := out[0]
	assert.ElementsMatch(t, []string{"security", "quality"}, fused.Agents)
	assert.Equal(t, issue.SeverityHigh, fused.Severity)
	assert.Equal(t, 2, fused.DuplicateCount)
	// mean(1.0, 1.0) * (1 + 0.1*(2-1)) = 1.1, clamped to 1.0
	assert.Equal(t, 1.0, fused.Confidence)
}

func TestDeduplicate_NoSimilarity_StaysSeparate(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "quality", Severity: issue.SeverityMedium, Line: line(40), Description: "long function", Confidence: 1.0},
		{Agent: "quality", Severity: issue.SeverityMedium, Line: line(80), Description: "long function", Confidence: 1.0},
	}
	out := Deduplicate(issues)
	assert.Len(t, out, 2)
}

func TestDeduplicate_SeverityIsMaxOfCluster(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "style", Severity: issue.SeverityLow, Line: line(5), Description: "a"},
		{Agent: "security", Severity: issue.SeverityCritical, Line: line(6), Description: "b"},
		{Agent: "quality", Severity: issue.SeverityInfo, Line: line(7), Description: "c"},
	}
	out := Deduplicate(issues)
	require.Len(t, out, 1)
	assert.Equal(t, issue.SeverityCritical, out[0].Severity)
	assert.Equal(t, 3, out[0].DuplicateCount)
}

func TestDeduplicate_TransitiveClusterViaLineChain(t *testing.T) {
	// a~b (line diff 5), b~c (line diff 5), but a!~c (line diff 10):
	// the greedy walk still merges all three from a's expansion.
	issues := []issue.Issue{
		{Agent: "security", Severity: issue.SeverityHigh, Line: line(0), Description: "a"},
		{Agent: "quality", Severity: issue.SeverityMedium, Line: line(5), Description: "b"},
		{Agent: "style", Severity: issue.SeverityLow, Line: line(10), Description: "c"},
	}
	out := Deduplicate(issues)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].DuplicateCount)
}

func TestDeduplicate_MixedLinePresence_NeverSimilar(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "security", Severity: issue.SeverityHigh, Line: line(10), Description: "x"},
		{Agent: "quality", Severity: issue.SeverityHigh, Description: "x"},
	}
	out := Deduplicate(issues)
	assert.Len(t, out, 2)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "security", Severity: issue.SeverityHigh, Line: line(12), Description: "hard-coded credential exposes secret", Confidence: 1.0},
		{Agent: "quality", Severity: issue.SeverityMedium, Line: line(12), Description: "secret literal committed in source", Confidence: 1.0},
		{Agent: "style", Severity: issue.SeverityInfo, Line: line(200), Description: "unrelated whitespace nit", Confidence: 1.0},
	}
	once := Deduplicate(issues)
	twice := Deduplicate(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Deduplicate() not idempotent (-once +twice):\n%s", diff)
	}
}

func TestDeduplicate_LenNeverExceedsInput(t *testing.T) {
	issues := []issue.Issue{
		{Agent: "a", Severity: issue.SeverityLow, Line: line(1), Description: "x"},
		{Agent: "b", Severity: issue.SeverityLow, Line: line(100), Description: "y"},
	}
	assert.LessOrEqual(t, len(Deduplicate(issues)), len(issues))
}

func TestTextSimilarity(t *testing.T) {
	assert.Greater(t, textSimilarity("hard coded secret", "hard-coded secret value"), 0.5)
	assert.Less(t, textSimilarity("completely different", "nothing alike here"), 0.5)
	assert.Equal(t, 1.0, textSimilarity("", ""))
}
