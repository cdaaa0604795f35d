// Package scheduler fans out the router's agent list to run in
// parallel, applies a per-agent timeout, and collects results behind
// the optional result cache (C6).
//
// Grounded on cmd/nerd/chat/review_aggregator.go's spawnMultiShardReview
// (a sync.WaitGroup fan-out with a mutex-guarded results slice),
// rewritten on golang.org/x/sync/errgroup (a teacher dependency,
// exercised elsewhere in the retrieved pack) so each agent's call
// carries its own deadline via context instead of a bare WaitGroup.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codenerd-labs/revcrew/internal/agent"
	"github.com/codenerd-labs/revcrew/internal/cache"
	"github.com/codenerd-labs/revcrew/internal/gateway"
	"github.com/codenerd-labs/revcrew/internal/issue"
	"github.com/codenerd-labs/revcrew/internal/logging"
	"github.com/codenerd-labs/revcrew/internal/review"
)

// DefaultAgentTimeout is the default soft/hard timeout applied to
// every agent call.
const DefaultAgentTimeout = 30 * time.Second

// Config configures one scheduler dispatch.
type Config struct {
	// AgentTimeout bounds each agent call; <= 0 uses DefaultAgentTimeout.
	AgentTimeout time.Duration
	// Cache is consulted/populated per agent when non-nil; a
	// nil Cache disables caching entirely.
	Cache *cache.LRU
}

// errTimeout is the sentinel message recorded for a cancelled agent:
// a cancelled agent is treated as an errored agent with message
// "timeout".
var errTimeout = errors.New("timeout")

// Dispatch runs every agent in st.AgentsToInvoke concurrently and
// returns a channel of results in completion order. The channel is closed
// once every dispatched agent has terminated; the caller (the pipeline
// driver) is the sole consumer and therefore the sole writer of
// review.State (message-passing pattern) — Dispatch itself never
// touches st beyond reading its read-only input fields.
func Dispatch(ctx context.Context, st *review.State, gw gateway.Gateway, cfg Config) <-chan review.AgentResult {
	out := make(chan review.AgentResult, len(st.AgentsToInvoke))

	// g.Go's functions always return nil: an agent's failure is
	// contained in its AgentResult, never surfaced as a Go error, so
	// errgroup never cancels a sibling agent over another's failure.
	// It is used here purely for its goroutine/error-group bookkeeping
	// over a bare sync.WaitGroup.
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range st.AgentsToInvoke {
		name := name
		g.Go(func() error {
			out <- runOne(gctx, st, name, gw, cfg)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(out)
	}()

	return out
}

func runOne(ctx context.Context, st *review.State, name string, gw gateway.Gateway, cfg Config) review.AgentResult {
	log := logging.For(logging.CategoryScheduler)

	def, ok := agent.Lookup(name)
	if !ok {
		return review.AgentResult{
			Agent:  name,
			Issues: []issue.Issue{},
			Err:    fmt.Errorf("scheduler: no agent registered for %q", name),
		}
	}

	key := cache.Key{FilePath: st.FilePath, Code: st.Code, Diff: st.Diff, AgentName: name}
	if cfg.Cache != nil {
		if entry, hit := cfg.Cache.Get(key); hit {
			log.Debugw("cache hit", "agent", name, "file", st.FilePath)
			// Cache-hit telemetry reports ~0 elapsed time.
			return review.AgentResult{Agent: name, Issues: entry.Issues, ElapsedSeconds: 0, FromCache: true}
		}
	}

	timeout := cfg.AgentTimeout
	if timeout <= 0 {
		timeout = DefaultAgentTimeout
	}
	agentCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome := agent.Run(agentCtx, def, gw, agent.VariablesFor(st))

	if outcome.Err != nil && errors.Is(outcome.Err, context.DeadlineExceeded) {
		log.Warnw("agent exceeded timeout, treating as error", "agent", name, "timeout", timeout)
		outcome.Err = errTimeout
	}

	result := review.AgentResult{
		Agent:          name,
		Issues:         outcome.Issues,
		ElapsedSeconds: outcome.ElapsedSeconds,
		Err:            outcome.Err,
	}

	// Never cache a run that errored or timed out.
	if cfg.Cache != nil && result.Err == nil {
		cfg.Cache.Put(key, cache.Entry{Issues: result.Issues, ElapsedSeconds: result.ElapsedSeconds})
	}

	return result
}
