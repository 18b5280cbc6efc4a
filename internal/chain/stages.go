// Package chain implements the five-stage support triage chain: intent
// interpretation, candidate categories, category selection, detail
// extraction, and a drafted customer reply. Stages run strictly in
// order; each prompt is rendered from the accumulating run context and
// each output becomes context for the stages after it.
package chain

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Context keys. The query is seeded at run start; each stage writes
// exactly one key and may read only keys written before it.
const (
	KeyCustomerQuery = "customer_query"
	KeyStage1        = "stage_1_output"
	KeyStage2        = "stage_2_output"
	KeyStage3        = "stage_3_output"
	KeyStage4        = "stage_4_output"
	KeyStage5        = "stage_5_output"
)

// AvailableCategories are the service categories the classifier stages
// choose from.
var AvailableCategories = []string{
	"Account Opening", "Billing Issue", "Account Access",
	"Transaction Inquiry", "Card Services", "Account Statement",
	"Loan Inquiry", "General Information",
}

// ErrInvalidStage is returned for stage numbers outside the chain.
var ErrInvalidStage = errors.New("invalid stage number")

// Spec describes one stage: the context key its output is stored
// under, a human-readable name, the context keys its template reads,
// and the prompt template itself.
type Spec struct {
	Key      string
	Name     string
	Needs    []string
	Template *template.Template
}

// Stages is the chain definition, in execution order. One generic loop
// in the Runner processes these; adding a stage means adding an entry
// here, not another arm of a switch.
var Stages = []Spec{
	{
		Key:      KeyStage1,
		Name:     "Intent Interpretation",
		Needs:    []string{KeyCustomerQuery},
		Template: mustTemplate("intent", stage1Template),
	},
	{
		Key:      KeyStage2,
		Name:     "Possible Categories",
		Needs:    []string{KeyStage1},
		Template: mustTemplate("candidates", stage2Template),
	},
	{
		Key:      KeyStage3,
		Name:     "Final Category",
		Needs:    []string{KeyStage1, KeyStage2},
		Template: mustTemplate("category", stage3Template),
	},
	{
		Key:      KeyStage4,
		Name:     "Extracted Details",
		Needs:    []string{KeyStage1, KeyStage3},
		Template: mustTemplate("details", stage4Template),
	},
	{
		Key:      KeyStage5,
		Name:     "Final Response",
		Needs:    []string{KeyStage1, KeyStage3, KeyStage4},
		Template: mustTemplate("response", stage5Template),
	},
}

// BuildPrompt renders the stage's template against the run context.
// A required key missing from the context is an error, not a silent
// blank.
func BuildPrompt(spec Spec, runCtx Context) (string, error) {
	var buf strings.Builder
	if err := spec.Template.Execute(&buf, runCtx); err != nil {
		return "", fmt.Errorf("building %s prompt: %w", spec.Name, err)
	}
	return buf.String(), nil
}

// PromptForStage renders the prompt for the 1-based stage number.
func PromptForStage(stage int, runCtx Context) (string, error) {
	if stage < 1 || stage > len(Stages) {
		return "", fmt.Errorf("%w: %d", ErrInvalidStage, stage)
	}
	return BuildPrompt(Stages[stage-1], runCtx)
}

// mustTemplate parses a stage template. Missing context keys abort
// rendering instead of interpolating "<no value>".
func mustTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(text))
}

const stage1Template = `System Role: You are an expert customer service analyst. Your task is to interpret a raw customer query and determine the core intent and sentiment.

Task: Analyze the following customer query and provide a **single, brief, and objective summary** of the customer's intent and purpose. Do not attempt to categorize or respond yet.

Customer Query:
{{.customer_query}}

Output Format Example: The customer wants to know why a charge on their debit card statement is unfamiliar and needs it resolved.
`

const stage2TemplateRaw = `System Role: You are a banking system classifier. Your task is to match a summarized customer intent to all relevant service categories.

Available Categories: %s

Task: Given the customer's summarized intent, identify **all possible categories** that could potentially apply. Output the categories as a comma-separated list.

Summarized Intent:
{{.stage_1_output}}

Output Format Example: Transaction Inquiry, Card Services, Billing Issue
`

var stage2Template = fmt.Sprintf(stage2TemplateRaw, strings.Join(AvailableCategories, ", "))

const stage3Template = `System Role: You are a senior banking service manager. Your task is to review potential categories and select the absolute best fit.

Task: From the list of possible categories provided below, select the **single most appropriate category** that accurately and specifically represents the customer's summarized intent. Output **only the name of the category**.

Summarized Intent:
{{.stage_1_output}}

Possible Categories:
{{.stage_2_output}}

Output Format Example: Transaction Inquiry
`

const stage4Template = `System Role: You are a customer information extractor. Your task is to identify and list any missing or necessary details required to resolve the customer's query based on the final category chosen.

Task: Based on the **Final Category** and the **Summarized Intent**, identify up to three pieces of **critical, missing information** needed to proceed (e.g., Account number, date, amount, last 4 digits of card, etc.). If no information is needed, state "None". Output the required details as a comma-separated list.

Final Category:
{{.stage_3_output}}

Summarized Intent (Original Source):
{{.stage_1_output}}

Output Format Example: Transaction Date, Transaction Amount, Card Type (Debit or Credit)
`

const stage5Template = `System Role: You are a professional, helpful customer service agent. Your task is to draft a brief and courteous response.

Task: Draft a **short, professional, and empathetic response** to the customer. Acknowledge their issue based on the **Final Category** and **Summarized Intent**, and politely ask them to provide the **Additional Details Needed** to help them immediately. The response should be 1-3 sentences long.

Final Category:
{{.stage_3_output}}

Summarized Intent:
{{.stage_1_output}}

Additional Details Needed:
{{.stage_4_output}}

Output Format Example: Thank you for reaching out regarding your transaction inquiry. We understand this is important. To help us locate the charge and resolve this, could you please provide the Transaction Date, Transaction Amount, and whether it was a Debit or Credit card?
`
