package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codenerd-labs/revcrew/internal/config"
	"github.com/codenerd-labs/revcrew/internal/gateway"
	"github.com/codenerd-labs/revcrew/internal/logging"
	"github.com/codenerd-labs/revcrew/internal/pipeline"
	"github.com/codenerd-labs/revcrew/internal/review"
	"github.com/codenerd-labs/revcrew/internal/scheduler"
	"github.com/codenerd-labs/revcrew/internal/score"
	"github.com/codenerd-labs/revcrew/internal/stream"
	"github.com/codenerd-labs/revcrew/internal/vcs"
)

var useStdin bool

// maxAgentEvents sizes the progress-event channel generously: router +
// at most six agents (widest route) + aggregator.
const maxAgentEvents = 8

var reviewCmd = &cobra.Command{
	Use:   "review <path>...",
	Short: "Review one or more files against the working tree's diff",
	Long: `Reviews each given file through the full agent pipeline and prints
its verdict. With --stdin, reads a single {file_path, code, diff,
change_type} JSON record instead of touching the working tree.`,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().BoolVar(&useStdin, "stdin", false, "read one input record as JSON from stdin")
}

// stdinRecord is the --stdin JSON shape.
type stdinRecord struct {
	FilePath   string            `json:"file_path"`
	Code       string            `json:"code"`
	Diff       string            `json:"diff"`
	ChangeType review.ChangeType `json:"change_type"`
}

// signalExitErr carries the exit code 130 the spec reserves for
// SIGINT cancellation back through cobra's error path.
type signalExitErr struct{}

func (signalExitErr) Error() string { return "revcrew: interrupted" }

// rejectExitErr marks a run that completed but produced a reject
// verdict; exitCodeFor maps it to exit code 1.
type rejectExitErr struct{ file string }

func (e rejectExitErr) Error() string { return fmt.Sprintf("revcrew: %s rejected", e.file) }

func exitCodeFor(err error) int {
	switch err.(type) {
	case signalExitErr:
		return 130
	case rejectExitErr:
		return 1
	default:
		return 1
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	gw, err := buildGateway(ctx, cfg)
	if err != nil {
		return err
	}
	cache := pipeline.NewCache(cfg.Cache.Enabled, cfg.Cache.Capacity)
	agentTimeout, _ := time.ParseDuration(cfg.Scheduler.AgentTimeout)

	inputs, err := gatherInputs(ctx, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no files to review")
		return nil
	}

	worst := score.VerdictApprove
	for _, in := range inputs {
		driver := stream.NewDriver(maxAgentEvents)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for e := range driver.Events() {
				printProgress(cmd, e)
			}
		}()

		st := pipeline.Run(ctx, in, pipeline.Config{
			Gateway:   gw,
			Scheduler: scheduler.Config{AgentTimeout: agentTimeout, Cache: cache},
			Stream:    driver,
		})
		<-done

		if err := ctx.Err(); err != nil {
			return signalExitErr{}
		}

		if err := printResult(cmd, st); err != nil {
			return err
		}
		worst = worseVerdict(worst, st.Verdict)
	}

	if worst == score.VerdictReject {
		return rejectExitErr{file: "one or more files"}
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if cacheSize > 0 {
		cfg.Cache.Capacity = cacheSize
		cfg.Cache.Enabled = true
	}
	if timeoutStr != "" {
		cfg.Scheduler.AgentTimeout = timeoutStr
	}
}

func buildGateway(ctx context.Context, cfg *config.Config) (gateway.Gateway, error) {
	if offline || cfg.LLM.APIKey == "" {
		return gateway.NewMockGateway(), nil
	}
	return gateway.NewGeminiGateway(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
}

func gatherInputs(ctx context.Context, paths []string) ([]review.Input, error) {
	if useStdin {
		var rec stdinRecord
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("revcrew: read stdin: %w", err)
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("revcrew: parse stdin record: %w", err)
		}
		return []review.Input{{
			FilePath:   rec.FilePath,
			Code:       rec.Code,
			Diff:       rec.Diff,
			ChangeType: rec.ChangeType,
		}}, nil
	}

	if len(paths) == 0 {
		return nil, nil
	}

	gc := vcs.GitCollaborator{}
	changed, err := gc.ChangedFiles(ctx, "HEAD")
	if err != nil {
		logging.For(logging.CategoryCLI).Warnw("could not resolve git diff, reviewing files with no diff context", "error", err)
	}
	byPath := make(map[string]vcs.ChangedFile, len(changed))
	for _, cf := range changed {
		byPath[cf.FilePath] = cf
	}

	inputs := make([]review.Input, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("revcrew: read %s: %w", p, err)
		}
		in := review.Input{FilePath: p, Code: string(content), ChangeType: review.ChangeModified}
		if cf, ok := byPath[p]; ok {
			in.Diff = cf.Diff
			in.ChangeType = cf.ChangeType
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func printProgress(cmd *cobra.Command, e stream.Event) {
	if jsonOutput {
		return
	}
	switch e.Node {
	case stream.NodeRouter:
		fmt.Fprintf(cmd.OutOrStdout(), "routed -> %v\n", e.Update)
	case stream.NodeAgent:
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: done\n", e.Name)
	case stream.NodeAggregator:
		// the final verdict line is printed by printResult
	}
}

func printResult(cmd *cobra.Command, st *review.State) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (score %.2f, %d issues)\n",
		st.FilePath, st.Verdict, st.FinalScore, len(st.DeduplicatedIssues))
	return nil
}

func worseVerdict(a, b score.Verdict) score.Verdict {
	rank := map[score.Verdict]int{score.VerdictApprove: 0, score.VerdictComment: 1, score.VerdictReject: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
