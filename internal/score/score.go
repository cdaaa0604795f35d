// Package score implements the weighted scorer and verdict rules
// (C8).
//
// Grounded on the teacher's internal/shards/reviewer/types.go
// (ReviewSeverity ordered enum) and the severity-to-BlockCommit
// decision style in internal/shards/reviewer/reviewer.go: a single
// pass over findings, first-rule-fires priority, no rule engine.
package score

import (
	"math"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

// Verdict is the terminal classification of a review.
type Verdict string

const (
	VerdictApprove Verdict = "approve"
	VerdictComment Verdict = "comment"
	VerdictReject  Verdict = "reject"
)

// severityWeight is the fixed severity weight table.
var severityWeight = map[issue.Severity]float64{
	issue.SeverityCritical: 10.0,
	issue.SeverityHigh:     5.0,
	issue.SeverityMedium:   2.0,
	issue.SeverityLow:      1.0,
	issue.SeverityInfo:     0.5,
}

// agentWeight is the fixed agent weight table.
var agentWeight = map[string]float64{
	"security":      2.0,
	"quality":       1.5,
	"performance":   1.3,
	"testing":       1.2,
	"documentation": 1.0,
	"style":         0.5,
}

// IssueScore computes one fused issue's raw contribution:
// severity_weight x max(agent_weight over issue.Agents) x confidence.
func IssueScore(i issue.Issue) float64 {
	agents := i.Agents
	if len(agents) == 0 && i.Agent != "" {
		agents = []string{i.Agent}
	}

	maxAgentWeight := 0.0
	for _, a := range agents {
		if w, ok := agentWeight[a]; ok && w > maxAgentWeight {
			maxAgentWeight = w
		}
	}

	return severityWeight[i.Severity] * maxAgentWeight * i.Confidence
}

// FinalScore sums IssueScore over every deduplicated issue, rounded to
// 2 decimal places.
func FinalScore(deduplicated []issue.Issue) float64 {
	total := 0.0
	for _, i := range deduplicated {
		total += IssueScore(i)
	}
	return math.Round(total*100) / 100
}

// Decide applies the first-rule-fires verdict table.
func Decide(deduplicated []issue.Issue, finalScore float64) Verdict {
	hasSeverity := func(sev issue.Severity) bool {
		for _, i := range deduplicated {
			if i.Severity == sev {
				return true
			}
		}
		return false
	}

	switch {
	case hasSeverity(issue.SeverityCritical):
		return VerdictReject
	case finalScore > 15:
		return VerdictReject
	case hasSeverity(issue.SeverityHigh):
		return VerdictComment
	case finalScore > 5:
		return VerdictComment
	default:
		return VerdictApprove
	}
}
