// Package pipeline is the driver that threads one file through every
// component the spec names (data flow: C1 -> C2 -> C6 fan-out
// over C4 (behind C5) -> C7 -> C8 -> final state, with C9 observing
// each completion).
//
// It lives outside internal/review to avoid an import cycle:
// internal/scheduler already depends on internal/review for
// review.State/AgentResult, so the driver that calls both scheduler
// and review must be a separate, higher-level package.
//
// Grounded on the teacher's cmd/nerd/chat/review_aggregator.go, whose
// RunMultiShardReview function is the same shape at the orchestration
// level: classify/route inputs, fan out, collect off a channel in a
// single goroutine, then reduce to one aggregated result.
package pipeline

import (
	"context"

	"github.com/codenerd-labs/revcrew/internal/cache"
	"github.com/codenerd-labs/revcrew/internal/classifier"
	"github.com/codenerd-labs/revcrew/internal/dedup"
	"github.com/codenerd-labs/revcrew/internal/gateway"
	"github.com/codenerd-labs/revcrew/internal/issue"
	"github.com/codenerd-labs/revcrew/internal/logging"
	"github.com/codenerd-labs/revcrew/internal/review"
	"github.com/codenerd-labs/revcrew/internal/router"
	"github.com/codenerd-labs/revcrew/internal/scheduler"
	"github.com/codenerd-labs/revcrew/internal/score"
	"github.com/codenerd-labs/revcrew/internal/stream"
)

// Config bundles the pieces a Run needs beyond the file input itself.
type Config struct {
	Gateway   gateway.Gateway
	Scheduler scheduler.Config
	// Stream receives a progress event per completed node (C9) when
	// non-nil; the router event is emitted before dispatch, one agent
	// event per completed agent, and the aggregator event once the final
	// state is assembled. Run closes Stream before returning.
	Stream *stream.Driver
}

// Run executes the full pipeline for one file and returns the
// completed review.State (ReviewState, fully populated).
func Run(ctx context.Context, in review.Input, cfg Config) *review.State {
	log := logging.For(logging.CategoryReview)

	fileType := in.FileType
	classification := classifier.Classify(in.FilePath)
	if fileType == "" {
		fileType = string(classification.Type)
	}

	agents := router.Route(classification)
	st := review.NewState(in, fileType, agents)

	if cfg.Stream != nil {
		cfg.Stream.Emit(stream.Event{Node: stream.NodeRouter, Update: append([]string(nil), agents...)})
	}

	log.Infow("dispatching review", "file", st.FilePath, "agents", agents, "review_id", st.ID)

	results := scheduler.Dispatch(ctx, st, cfg.Gateway, cfg.Scheduler)
	for r := range results {
		st.ApplyResult(r)
		if cfg.Stream != nil {
			cfg.Stream.Emit(stream.Event{Node: stream.NodeAgent, Name: r.Agent, Update: r})
		}
	}

	st.BuildAllIssues()
	st.DeduplicatedIssues = dedup.Deduplicate(st.AllIssues)
	st.FinalScore = score.FinalScore(st.DeduplicatedIssues)
	st.Verdict = score.Decide(st.DeduplicatedIssues, st.FinalScore)
	st.Summary = buildSummary(st)

	if cfg.Stream != nil {
		cfg.Stream.Emit(stream.Event{Node: stream.NodeAggregator, Update: st})
		cfg.Stream.Close()
	}

	log.Infow("review complete", "file", st.FilePath, "verdict", st.Verdict, "score", st.FinalScore)
	return st
}

// NewCache builds the optional C5 result cache per configuration.
func NewCache(enabled bool, capacity int) *cache.LRU {
	if !enabled {
		return nil
	}
	return cache.New(capacity)
}

func buildSummary(st *review.State) review.Summary {
	summary := review.Summary{
		TotalIssuesBeforeDedup: len(st.AllIssues),
		TotalIssuesAfterDedup:  len(st.DeduplicatedIssues),
		BySeverity:             make(map[issue.Severity]int),
	}
	summary.ClustersMerged = summary.TotalIssuesBeforeDedup - summary.TotalIssuesAfterDedup

	for _, i := range st.DeduplicatedIssues {
		summary.BySeverity[i.Severity]++
	}
	for _, agent := range st.AgentsToInvoke {
		if _, failed := st.AgentErrors[agent]; failed {
			summary.AgentsFailed++
		} else {
			summary.AgentsSucceeded++
		}
	}
	return summary
}
