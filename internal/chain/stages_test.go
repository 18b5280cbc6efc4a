package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildPrompt_EmbedsContextVerbatim checks that every stage's
// prompt carries each required context value unmodified. The values are
// distinctive sentinels so accidental matches cannot pass.
func TestBuildPrompt_EmbedsContextVerbatim(t *testing.T) {
	runCtx := Context{
		KeyCustomerQuery: "my card was charged twice for the same coffee",
		KeyStage1:        "SUMMARY-SENTINEL-1",
		KeyStage2:        "CANDIDATES-SENTINEL-2",
		KeyStage3:        "CATEGORY-SENTINEL-3",
		KeyStage4:        "DETAILS-SENTINEL-4",
	}

	for i, spec := range Stages {
		prompt, err := BuildPrompt(spec, runCtx)
		require.NoError(t, err, "stage %d (%s)", i+1, spec.Name)

		for _, need := range spec.Needs {
			assert.Contains(t, prompt, runCtx[need],
				"stage %d (%s) prompt should embed %s verbatim", i+1, spec.Name, need)
		}
	}
}

// TestBuildPrompt_MissingContextKey checks that rendering fails loudly
// when a required key has not been written yet, instead of emitting a
// prompt with a silent blank.
func TestBuildPrompt_MissingContextKey(t *testing.T) {
	runCtx := NewContext("some query")

	// Stage 3 reads stage_1_output and stage_2_output; neither exists.
	_, err := BuildPrompt(Stages[2], runCtx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyStage1)
}

// TestPromptForStage covers the 1-based stage lookup and the typed
// invalid-stage error.
func TestPromptForStage(t *testing.T) {
	runCtx := NewContext("I was double charged")

	t.Run("valid stage", func(t *testing.T) {
		prompt, err := PromptForStage(1, runCtx)
		require.NoError(t, err)
		assert.Contains(t, prompt, "I was double charged")
	})

	t.Run("out of range", func(t *testing.T) {
		for _, n := range []int{0, -1, 6, 99} {
			_, err := PromptForStage(n, runCtx)
			assert.ErrorIs(t, err, ErrInvalidStage, "stage %d", n)
		}
	})
}

// TestStages_ReadOnlyEarlierKeys verifies the table is well-formed:
// five stages, each reading only keys written before it and writing a
// key nothing wrote yet.
func TestStages_ReadOnlyEarlierKeys(t *testing.T) {
	require.Len(t, Stages, 5)

	written := map[string]bool{KeyCustomerQuery: true}
	for i, spec := range Stages {
		for _, need := range spec.Needs {
			assert.True(t, written[need],
				"stage %d (%s) reads %q before any stage writes it", i+1, spec.Name, need)
		}
		assert.False(t, written[spec.Key],
			"stage %d (%s) writes %q which is already taken", i+1, spec.Name, spec.Key)
		written[spec.Key] = true
	}
}

// TestStage2Prompt_ListsAllCategories pins the classifier stage to the
// full category list.
func TestStage2Prompt_ListsAllCategories(t *testing.T) {
	runCtx := NewContext("query")
	require.NoError(t, runCtx.add(KeyStage1, "summary"))

	prompt, err := PromptForStage(2, runCtx)
	require.NoError(t, err)

	require.Len(t, AvailableCategories, 8)
	for _, category := range AvailableCategories {
		assert.Contains(t, prompt, category)
	}
}

// TestStagePrompts_CarryRoleAndExample spot-checks the prompt shape:
// every stage opens with a role preamble, states a task, and shows one
// output-format example.
func TestStagePrompts_CarryRoleAndExample(t *testing.T) {
	runCtx := Context{
		KeyCustomerQuery: "q",
		KeyStage1:        "s1",
		KeyStage2:        "s2",
		KeyStage3:        "s3",
		KeyStage4:        "s4",
	}

	for i, spec := range Stages {
		prompt, err := BuildPrompt(spec, runCtx)
		require.NoError(t, err)

		assert.Contains(t, prompt, "System Role:", "stage %d", i+1)
		assert.Contains(t, prompt, "Task:", "stage %d", i+1)
		assert.Contains(t, prompt, "Output Format Example:", "stage %d", i+1)
	}
}
