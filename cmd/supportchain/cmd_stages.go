package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"supportchain/internal/chain"
)

// stagesCmd prints the chain definition.
var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show the stage table the chain executes",
	Long: `Lists every stage in execution order with the context keys it
reads and the key it writes. Useful for checking what a prompt will see
before running against a live model.`,
	RunE: showStages,
}

func showStages(cmd *cobra.Command, args []string) error {
	st := newStyles(colorEnabled())

	fmt.Println(st.header.Render("Triage Chain Stages"))
	for i, s := range chain.Stages {
		fmt.Printf("  %s\n", st.stageLabel.Render(fmt.Sprintf("%d. %s", i+1, s.Name)))
		fmt.Printf("     reads:  %s\n", strings.Join(s.Needs, ", "))
		fmt.Printf("     writes: %s\n", s.Key)
	}
	fmt.Printf("\nCategories: %s\n", strings.Join(chain.AvailableCategories, ", "))

	return nil
}
