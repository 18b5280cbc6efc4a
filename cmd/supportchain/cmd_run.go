package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"supportchain/internal/chain"
	"supportchain/internal/config"
	"supportchain/internal/llm"
)

// demoQuery is used when run is invoked without a query argument.
const demoQuery = "I cannot log into my online banking account, I keep getting a 'password incorrect' error even though I know it is right."

var (
	jsonOutput bool
	failFast   bool
)

// runCmd executes the triage chain for one customer query.
var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run the five-stage triage chain on a customer query",
	Long: `Runs the full chain: intent interpretation, possible categories,
final category, extracted details, final response. Without an argument a
built-in demo query is used.

Stage failures are reported inline; the run still fills all five slots
unless --fail-fast is set.`,
	Args: cobra.ArbitraryArgs,
	RunE: runChain,
}

func init() {
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run result as JSON")
	runCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failed stage")
}

func runChain(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	query := demoQuery
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}
	logger.Info("Processing query", zap.Int("query_len", len(query)))

	runner := chain.NewRunner(buildClient(cfg), logger)
	runner.SetFailFast(failFast || cfg.Chain.FailFast)

	result, runErr := runner.Run(ctx, query)
	if result == nil {
		return runErr
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
		return runErr
	}

	st := newStyles(colorEnabled())
	fmt.Printf("Processing Query: %q\n\n", query)
	fmt.Println(st.header.Render("Final Prompt Chain Output (5 Stages)"))
	for i, s := range result.Stages {
		fmt.Printf("  %s:\n", st.stageLabel.Render(fmt.Sprintf("%d. %s", i+1, s.Name)))
		if s.Err != nil {
			fmt.Printf("    -> %s\n", st.errText.Render("error: "+s.Err.Error()))
		} else {
			fmt.Printf("    -> %s\n", s.Output)
		}
	}
	fmt.Printf("\n%s\n", st.muted.Render(fmt.Sprintf("%s finished in %s",
		result.ID, result.Elapsed.Round(time.Millisecond))))

	return runErr
}

// buildClient wires the configured Gemini client behind the tracing
// decorator. A missing key is logged, not fatal: the run proceeds and
// every stage reports the not-configured error without a network call.
func buildClient(c *config.Config) llm.LLMClient {
	if !c.Configured() {
		logger.Warn("no API key configured; stages will fail without network calls",
			zap.String("env", llm.APIKeyEnvVar))
	}
	gemini := llm.NewGeminiClientWithConfig(llm.GeminiConfig{
		APIKey:          c.LLM.APIKey,
		BaseURL:         c.LLM.BaseURL,
		Model:           c.LLM.Model,
		Timeout:         c.GetLLMTimeout(),
		Temperature:     c.LLM.Temperature,
		MaxOutputTokens: c.LLM.MaxOutputTokens,
	})
	return llm.NewTracingClient(gemini, logger)
}
