package prompt

import (
	"fmt"
	"strings"
)

// ComparisonSystem frames the model as a contract reviewer that only reports differences.
func ComparisonSystem() string {
	return `You are an expert legal assistant specializing in contract review and comparison. You respond with one valid JSON array only (no markdown, no commentary). Do not include code fences.`
}

// Comparison builds the user prompt asking for the material differences between
// the labelled contracts. labels and texts are index aligned.
func Comparison(labels []string, texts []string) string {
	var format strings.Builder
	for _, l := range labels {
		fmt.Fprintf(&format, "\"contract_%s_detail\": (string, the relevant detail or excerpt from Contract %s pertaining to this differing aspect. If the aspect is missing in %s but present in others, state \"Not present in Contract %s\" or similar.)\n",
			strings.ToLower(l), l, l, l)
	}

	var sections strings.Builder
	for i, l := range labels {
		fmt.Fprintf(&sections, "\nContract %s:\n---\n%s\n---\n", l, texts[i])
	}

	return fmt.Sprintf(`Your task is to meticulously review the %d contracts provided below.

First, thoroughly read and understand all contracts.
Then, identify the key clauses, terms, or aspects where there are material differences between any of the contracts.
Consider aspects such as (but not limited to, and only if they differ):
- Parties involved
- Effective Dates or Execution Dates
- Contract Duration or Term
- Governing Law and Jurisdiction
- Payment Terms (amounts, schedules, methods)
- Scope of Work, Supply, or Services
- Confidentiality obligations
- Limitations of Liability
- Termination rights and procedures
- Dispute resolution mechanisms
- Force Majeure provisions
- Assignment rights
- Notice requirements
- Any unique or non-standard clauses that show variation.

For EACH identified material difference, provide a concise summary.
If a clause is present in some contracts but entirely absent or significantly different in others, highlight this as a key difference.
Do NOT list aspects that are identical or substantially similar across all contracts. Focus only on the differences.
Quote excerpts verbatim, including redaction markers such as [*].

Format your response as a JSON array of objects. Each object in the array represents one identified difference and must have the following keys:
"clause_category": (string, e.g., "Effective Date Discrepancy", "Parties - Purchaser Identity", "Governing Law Variation")
%s"analysis_of_difference": (string, a brief explanation of the nature and potential implication of this difference across the contracts.)

If, after careful review, you find NO material differences between the contracts, return an empty JSON array: [].
%s
JSON Output (ensure this is a valid JSON array, focusing only on differences):`,
		len(labels), format.String(), sections.String())
}
