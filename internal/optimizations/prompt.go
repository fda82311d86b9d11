package optimizations

import "fmt"

// BuildPrompt embeds the supply chain summary in the strict instruction
// template. The closed schema and array-only rule keep the provider output
// parseable; everything else is handled by the extractor.
func BuildPrompt(summary string) string {
	return fmt.Sprintf(`
You are a sustainability optimization expert.

Based on the following summarized supply-chain data, generate optimization recommendations.

%s

STRICT RULES:
- Output ONLY valid JSON
- No markdown
- No explanations
- Output MUST be a JSON ARRAY

Each object MUST follow this schema exactly:

{
  "stage": "string",
  "recommendationType": "transport | energy | network | packaging | other",
  "currentState": "string",
  "suggestedImprovement": "string",
  "carbonReductionPercent": number,
  "costImpactINR": number,
  "timeImpactDays": number,
  "implementationDifficulty": "low | medium | high",
  "maharashtraSpecificNotes": "string",
  "whyThisApproach": "string"
}

Generate 2-3 recommendations.
Region: Maharashtra, India.

IMPORTANT:
Return ONLY valid JSON. NOTHING ELSE.
`, summary)
}
