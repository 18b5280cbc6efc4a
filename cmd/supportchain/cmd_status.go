package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"supportchain/internal/chain"
	"supportchain/internal/llm"
)

// statusCmd shows the resolved configuration.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved configuration and credential state",
	RunE:  showStatus,
}

func showStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("supportchain status")
	fmt.Println("===================")
	fmt.Printf("Model:    %s\n", cfg.LLM.Model)
	fmt.Printf("Endpoint: %s\n", cfg.LLM.BaseURL)
	fmt.Printf("Timeout:  %s\n", cfg.GetLLMTimeout())
	fmt.Printf("Stages:   %d\n", len(chain.Stages))
	fmt.Println()

	if cfg.Configured() {
		fmt.Println("✓ Gemini API key configured")
	} else {
		fmt.Printf("✗ Gemini API key not configured (set %s)\n", llm.APIKeyEnvVar)
	}

	return nil
}
