package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supportchain/internal/llm"
)

// stageContextSetter is implemented by clients that attribute calls to
// a run and stage (llm.TracingClient). The runner feeds it when the
// injected client supports it.
type stageContextSetter interface {
	SetStageContext(runID, stage string)
	ClearStageContext()
}

// Runner executes the stage table sequentially against one customer
// query. The client is injected; the package holds no global state.
type Runner struct {
	client   llm.LLMClient
	logger   *zap.Logger
	stages   []Spec
	failFast bool
}

// NewRunner creates a runner over the default stage table. A nil
// logger is replaced with a nop logger.
func NewRunner(client llm.LLMClient, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		client: client,
		logger: logger,
		stages: Stages,
	}
}

// SetFailFast makes Run stop at the first failed stage instead of
// substituting a placeholder and continuing.
func (r *Runner) SetFailFast(enable bool) {
	r.failFast = enable
}

// SetStages overrides the stage table. The default is the full triage
// chain.
func (r *Runner) SetStages(stages []Spec) {
	r.stages = stages
}

// Run executes all stages in order against customerQuery. Under the
// default policy every stage runs and the result carries one entry per
// stage: a failed stage records its error and a bracketed placeholder
// is written into the context so later prompts stay well-formed. With
// fail-fast enabled Run returns at the first failure with the partial
// result and the stage error.
func (r *Runner) Run(ctx context.Context, customerQuery string) (*Result, error) {
	runID := "run_" + uuid.NewString()[:8]
	start := time.Now()

	logger := r.logger.With(zap.String("run_id", runID))
	logger.Info("chain run started",
		zap.Int("stages", len(r.stages)),
		zap.Int("query_len", len(customerQuery)))

	setter, hasSetter := r.client.(stageContextSetter)
	if hasSetter {
		defer setter.ClearStageContext()
	}

	runCtx := NewContext(customerQuery)
	result := &Result{
		ID:     runID,
		Query:  customerQuery,
		Stages: make([]StageResult, 0, len(r.stages)),
	}

	for i, spec := range r.stages {
		stageNum := i + 1
		if hasSetter {
			setter.SetStageContext(runID, spec.Key)
		}

		output, err := r.runStage(ctx, spec, runCtx)
		result.Stages = append(result.Stages, StageResult{
			Key:    spec.Key,
			Name:   spec.Name,
			Output: output,
			Err:    err,
		})

		contextValue := output
		if err != nil {
			logger.Warn("stage failed",
				zap.Int("stage", stageNum),
				zap.String("name", spec.Name),
				zap.Error(err))
			if r.failFast {
				result.Elapsed = time.Since(start)
				return result, fmt.Errorf("stage %d (%s): %w", stageNum, spec.Name, err)
			}
			// Later stages still need something readable in this slot.
			contextValue = fmt.Sprintf("[%s unavailable: %v]", spec.Name, err)
		} else {
			logger.Debug("stage completed",
				zap.Int("stage", stageNum),
				zap.String("name", spec.Name),
				zap.Int("output_len", len(output)))
		}

		if addErr := runCtx.add(spec.Key, contextValue); addErr != nil {
			result.Elapsed = time.Since(start)
			return result, addErr
		}
	}

	result.Elapsed = time.Since(start)
	logger.Info("chain run completed",
		zap.Duration("elapsed", result.Elapsed),
		zap.Bool("failed", result.Failed()))
	return result, nil
}

// runStage renders the stage prompt and sends it to the model.
func (r *Runner) runStage(ctx context.Context, spec Spec, runCtx Context) (string, error) {
	prompt, err := BuildPrompt(spec, runCtx)
	if err != nil {
		return "", err
	}
	return r.client.Complete(ctx, prompt)
}
