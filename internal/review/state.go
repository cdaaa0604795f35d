// Package review defines the pipeline's threaded record (C10, the
// ReviewState); the driver that assembles it is internal/pipeline.
//
// Grounded on the teacher's internal/shards/reviewer/types.go
// (ReviewResult's field shape) and cmd/nerd/chat/review_aggregator.go's
// AggregatedReview (FindingsByShard map[string][]reviewer.ParsedFinding),
// which already models "one slot per shard" — generalized here to a
// stricter single-writer discipline: State is assembled by one
// goroutine (the pipeline driver) consuming agent results off a
// channel, so no field is ever touched by two goroutines at once, the
// same reasoning the teacher used for preferring message passing over
// a locked struct.
package review

import (
	"github.com/google/uuid"

	"github.com/codenerd-labs/revcrew/internal/issue"
	"github.com/codenerd-labs/revcrew/internal/score"
)

// ChangeType is the kind of change a VCS reports for a file.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
)

// Input is the pipeline's entry record.
type Input struct {
	FilePath   string
	FileType   string // optional; Classify() runs if empty
	Code       string
	Diff       string
	ChangeType ChangeType
}

// AgentResult is what an agent run contributes to the state — the
// message passed from a scheduler goroutine to the single assembling
// driver goroutine.
type AgentResult struct {
	Agent          string
	Issues         []issue.Issue
	ElapsedSeconds float64
	Err            error // nil on success; "timeout" or the wrapped agent error otherwise
	FromCache      bool
}

// Summary holds the counts and dedup statistics reported alongside a
// finished review.
type Summary struct {
	TotalIssuesBeforeDedup int
	TotalIssuesAfterDedup  int
	ClustersMerged         int
	BySeverity             map[issue.Severity]int
	AgentsSucceeded        int
	AgentsFailed           int
}

// State is the record threaded through the pipeline.
// Input fields are read-only once routing starts; per-agent fields are
// written exactly once each, by ApplyResult; post-fusion fields are
// written exactly once, by the driver, after every agent has
// terminated.
type State struct {
	ID string

	FilePath   string
	FileType   string
	Code       string
	Diff       string
	ChangeType ChangeType

	AgentsToInvoke []string

	Issues        map[string][]issue.Issue
	ExecutionTime map[string]float64
	AgentErrors   map[string]string

	AllIssues          []issue.Issue
	DeduplicatedIssues []issue.Issue
	FinalScore         float64
	Verdict            score.Verdict
	Summary            Summary
}

// NewState builds a State for a classified, routed input. agentsToInvoke
// is the router's output; it is copied so later mutation of the
// caller's slice can't retroactively change routing.
func NewState(in Input, fileType string, agentsToInvoke []string) *State {
	return &State{
		ID:             uuid.NewString(),
		FilePath:       in.FilePath,
		FileType:       fileType,
		Code:           in.Code,
		Diff:           in.Diff,
		ChangeType:     in.ChangeType,
		AgentsToInvoke: append([]string(nil), agentsToInvoke...),
		Issues:         make(map[string][]issue.Issue),
		ExecutionTime:  make(map[string]float64),
		AgentErrors:    make(map[string]string),
	}
}

// ApplyResult writes one agent's outcome into its exclusive slot. It
// must only ever be called from the single state-assembling goroutine
// (the pipeline driver's loop over scheduler.Dispatch's results) —
// never concurrently — which is
// what makes the "no cross-agent writes" invariant hold without a lock
// on State itself.
func (s *State) ApplyResult(r AgentResult) {
	s.ExecutionTime[r.Agent] = r.ElapsedSeconds
	if r.Err != nil {
		s.AgentErrors[r.Agent] = r.Err.Error()
		s.Issues[r.Agent] = []issue.Issue{}
		return
	}
	if r.Issues == nil {
		r.Issues = []issue.Issue{}
	}
	s.Issues[r.Agent] = r.Issues
}

// BuildAllIssues concatenates every invoked agent's issues in
// AgentsToInvoke order, producing AllIssues. Must be called only after
// every dispatched agent has terminated, since deduplicated_issues is
// only populated once all invoked agents have terminated.
func (s *State) BuildAllIssues() {
	all := make([]issue.Issue, 0)
	for _, agent := range s.AgentsToInvoke {
		all = append(all, s.Issues[agent]...)
	}
	s.AllIssues = all
}

// Complete is true once every invoked agent has either an issue slot
// or a recorded error.
func (s *State) Complete() bool {
	for _, agent := range s.AgentsToInvoke {
		_, hasIssues := s.Issues[agent]
		_, hasErr := s.AgentErrors[agent]
		if !hasIssues && !hasErr {
			return false
		}
	}
	return true
}
