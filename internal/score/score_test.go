package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

func mkIssue(sev issue.Severity, agent string, confidence float64) issue.Issue {
	return issue.Issue{Severity: sev, Agents: []string{agent}, Confidence: confidence}
}

// One critical security issue forces a reject, score 20.0.
func TestScenario_RejectViaCritical(t *testing.T) {
	issues := []issue.Issue{mkIssue(issue.SeverityCritical, "security", 1.0)}
	fs := FinalScore(issues)
	assert.Equal(t, 20.0, fs)
	assert.Equal(t, VerdictReject, Decide(issues, fs))
}

// Two medium quality issues land a comment verdict, score 6.0.
func TestScenario_CommentViaScoreOnly(t *testing.T) {
	issues := []issue.Issue{
		mkIssue(issue.SeverityMedium, "quality", 1.0),
		mkIssue(issue.SeverityMedium, "quality", 1.0),
	}
	fs := FinalScore(issues)
	assert.Equal(t, 6.0, fs)
	assert.Equal(t, VerdictComment, Decide(issues, fs))
}

// One info style issue approves, score 0.25.
func TestScenario_Approve(t *testing.T) {
	issues := []issue.Issue{mkIssue(issue.SeverityInfo, "style", 1.0)}
	fs := FinalScore(issues)
	assert.Equal(t, 0.25, fs)
	assert.Equal(t, VerdictApprove, Decide(issues, fs))
}

func TestDecide_HighSeverityForcesComment_EvenUnderScoreThreshold(t *testing.T) {
	issues := []issue.Issue{mkIssue(issue.SeverityHigh, "style", 0.5)}
	fs := FinalScore(issues)
	assert.Less(t, fs, 5.0)
	assert.Equal(t, VerdictComment, Decide(issues, fs))
}

func TestDecide_NoIssues_Approve(t *testing.T) {
	assert.Equal(t, 0.0, FinalScore(nil))
	assert.Equal(t, VerdictApprove, Decide(nil, 0))
}

func TestIssueScore_UsesMaxAgentWeightAcrossFusedAgents(t *testing.T) {
	i := issue.Issue{Severity: issue.SeverityMedium, Agents: []string{"style", "security"}, Confidence: 1.0}
	// security (2.0) should win over style (0.5).
	assert.Equal(t, 4.0, IssueScore(i))
}

func TestFinalScore_NeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, FinalScore(nil), 0.0)
}
