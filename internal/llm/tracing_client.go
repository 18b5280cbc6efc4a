package llm

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TracingClient wraps any LLMClient and logs every interaction. All
// chain stage calls flow through this wrapper so runs can be followed
// in the logs end to end.
type TracingClient struct {
	underlying LLMClient
	logger     *zap.Logger

	// Current attribution (set before each stage execution)
	runID string
	stage string

	mu sync.RWMutex
}

// NewTracingClient creates a tracing wrapper around an existing client.
func NewTracingClient(underlying LLMClient, logger *zap.Logger) *TracingClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TracingClient{
		underlying: underlying,
		logger:     logger,
	}
}

// SetStageContext sets the run and stage attribution for subsequent
// calls. Called by the runner before each stage.
func (tc *TracingClient) SetStageContext(runID, stage string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.runID = runID
	tc.stage = stage
}

// ClearStageContext clears the attribution after a run completes.
func (tc *TracingClient) ClearStageContext() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.runID = ""
	tc.stage = ""
}

// GetCurrentContext returns the current attribution.
func (tc *TracingClient) GetCurrentContext() (runID, stage string) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.runID, tc.stage
}

// Complete implements LLMClient.Complete with tracing.
func (tc *TracingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return tc.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem implements LLMClient.CompleteWithSystem with tracing.
func (tc *TracingClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	tc.mu.RLock()
	runID := tc.runID
	stage := tc.stage
	tc.mu.RUnlock()

	start := time.Now()
	tc.logger.Debug("llm call started",
		zap.String("run_id", runID),
		zap.String("stage", stage),
		zap.Int("prompt_len", len(userPrompt)))

	response, err := tc.underlying.CompleteWithSystem(ctx, systemPrompt, userPrompt)

	duration := time.Since(start)
	if err != nil {
		tc.logger.Warn("llm call failed",
			zap.String("run_id", runID),
			zap.String("stage", stage),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		tc.logger.Info("llm call completed",
			zap.String("run_id", runID),
			zap.String("stage", stage),
			zap.Duration("duration", duration),
			zap.Int("response_len", len(response)))
	}

	return response, err
}

// GetUnderlying returns the wrapped client.
func (tc *TracingClient) GetUnderlying() LLMClient {
	return tc.underlying
}
