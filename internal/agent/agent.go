// Package agent implements the fixed-role specialist agent (C4):
// a named prompt template bound to the LLM gateway, with bounded retry
// and result attribution.
//
// Grounded on cmd/nerd/chat/review_aggregator.go's spawnWithRetry
// closure (bounded retry with a fixed delay, attempt counting,
// attribution of a shard name onto the result) — translated here from
// "spawn a sub-agent process" to "call the LLM gateway", and on
// internal/shards/reviewer/specialist_review.go's FormatSpecialistReviewTask
// for the per-specialist prompt-template shape.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/codenerd-labs/revcrew/internal/gateway"
	"github.com/codenerd-labs/revcrew/internal/issue"
	"github.com/codenerd-labs/revcrew/internal/logging"
	"github.com/codenerd-labs/revcrew/internal/review"
)

// formatInstructions is the fixed {format_instructions} variable every
// agent call fills in — the structural contract the gateway
// must satisfy, independent of any specialist's role prompt.
const formatInstructions = `Respond with a single JSON object of the shape {"issues": [{"kind": "security|quality|performance|testing|documentation|style|bug", "severity": "critical|high|medium|low|info", "line": <int or omitted>, "description": "...", "suggestion": "...", "snippet": "...", "confidence": <0..1>}]}. Emit no text outside that object.`

// VariablesFor builds the gateway variables from the pipeline
// state's read-only input fields.
func VariablesFor(st *review.State) gateway.Variables {
	return gateway.Variables{
		FormatInstructions: formatInstructions,
		FilePath:           st.FilePath,
		FileType:           st.FileType,
		Code:               st.Code,
		Diff:               st.Diff,
	}
}

// maxRetries is the number of *additional* attempts after the first.
const maxRetries = 2

// retryDelay is the fixed pause between retry attempts.
var retryDelay = time.Second

// Definition is an AgentDefinition: identity plus a pure-ish
// (may fail) function (ReviewState) -> list<Issue>, realized here as
// a fixed name, a prompt template, and the shared gateway contract.
type Definition struct {
	Name           string
	PromptTemplate string
}

// Outcome is the result of running one agent to completion, including
// whatever telemetry the scheduler needs to populate ReviewState.
type Outcome struct {
	Issues         []issue.Issue
	ElapsedSeconds float64
	Err            error // nil on success
}

// Run executes the agent's gateway call with retry. Failure
// never propagates past this function: on final failure it returns a
// zero-issue Outcome carrying the terminal error, never an error return
// itself, matching the containment guarantee: the agent's issue
// slot is set to empty and its error slot is set to the failure message.
func Run(ctx context.Context, def Definition, gw gateway.Gateway, vars gateway.Variables) Outcome {
	log := logging.For(logging.CategoryAgent)
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Outcome{Issues: []issue.Issue{}, ElapsedSeconds: time.Since(start).Seconds(), Err: ctx.Err()}
			case <-time.After(retryDelay):
			}
		}

		result, err := gw.Invoke(ctx, def.PromptTemplate, vars)
		if err == nil {
			return Outcome{
				Issues:         stamp(result.Issues, def.Name),
				ElapsedSeconds: time.Since(start).Seconds(),
			}
		}

		lastErr = err
		var transient *gateway.TransientError
		if !errors.As(err, &transient) {
			// FatalError, or any other error: not retryable.
			log.Warnw("agent call failed fatally", "agent", def.Name, "attempt", attempt+1, "error", err)
			break
		}
		log.Warnw("agent call failed transiently, will retry", "agent", def.Name, "attempt", attempt+1, "error", err)
	}

	return Outcome{
		Issues:         []issue.Issue{},
		ElapsedSeconds: time.Since(start).Seconds(),
		Err:            lastErr,
	}
}

// stamp sets the agent name and clamps confidence on every emitted issue.
func stamp(issues []issue.Issue, name string) []issue.Issue {
	out := make([]issue.Issue, len(issues))
	for i, it := range issues {
		it.Agent = name
		it.Clamp()
		out[i] = it
	}
	return out
}
