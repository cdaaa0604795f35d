package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenerd-labs/revcrew/internal/config"
	"github.com/codenerd-labs/revcrew/internal/score"
)

func TestWorseVerdict(t *testing.T) {
	assert.Equal(t, score.VerdictComment, worseVerdict(score.VerdictApprove, score.VerdictComment))
	assert.Equal(t, score.VerdictReject, worseVerdict(score.VerdictReject, score.VerdictComment))
	assert.Equal(t, score.VerdictApprove, worseVerdict(score.VerdictApprove, score.VerdictApprove))
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, 130, exitCodeFor(signalExitErr{}))
	assert.Equal(t, 1, exitCodeFor(rejectExitErr{file: "a.go"}))
}

func TestApplyFlagOverrides(t *testing.T) {
	oldCacheSize, oldTimeout := cacheSize, timeoutStr
	defer func() { cacheSize, timeoutStr = oldCacheSize, oldTimeout }()

	cacheSize = 256
	timeoutStr = "5s"
	cfg := config.DefaultConfig()
	applyFlagOverrides(cfg)

	assert.Equal(t, 256, cfg.Cache.Capacity)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "5s", cfg.Scheduler.AgentTimeout)
}
