// internal/recommendation/llm/prompt.go
package llm

import (
	"fmt"
	"strings"

	"foresight-workers/internal/models"
)

const responseSchemaHint = `{
  "recommendedTechniques": [
    {"techniqueId": "<id from the catalog>", "justification": "<why it fits>", "sequenceOrder": 1}
  ],
  "analysisDescription": "<short description of the proposed roadmap>",
  "estimatedDuration": "<e.g. 3-6 months>"
}`

// BuildPrompt renders the profile and the whole catalog into one prompt.
// The output is deterministic for a given profile and catalog.
func BuildPrompt(profile *models.StudyProfile, catalog *models.Catalog, minTechniques, maxTechniques int) string {
	var parts []string

	parts = append(parts, "You are an expert in strategic foresight methodology. Recommend and sequence techniques for the study below.")

	parts = append(parts, "\nStudy Profile:")
	parts = append(parts, fmt.Sprintf("- Title: %s", profile.Title))
	parts = append(parts, fmt.Sprintf("- Description: %s", profile.Description))
	parts = append(parts, fmt.Sprintf("- Country: %s", profile.Country))
	parts = append(parts, fmt.Sprintf("- State level: %s", profile.StateLevel))
	parts = append(parts, fmt.Sprintf("- Scope: %s", profile.Scope))
	parts = append(parts, fmt.Sprintf("- Objective complexity: %s", profile.ObjectiveComplexity))
	parts = append(parts, fmt.Sprintf("- Team experience: %s", profile.TeamExperience))
	parts = append(parts, fmt.Sprintf("- Time horizon: %s", profile.TimeHorizon))
	parts = append(parts, fmt.Sprintf("- Estimated time: %s", orNone(profile.EstimatedTime)))

	res := profile.AvailableResources
	parts = append(parts, "\nAvailable Resources:")
	parts = append(parts, fmt.Sprintf("- Budget: %s", res.Budget))
	parts = append(parts, fmt.Sprintf("- Expert access: %s", yesNo(res.ExpertAccess)))
	parts = append(parts, fmt.Sprintf("- Technological tools: %s", yesNo(res.TechnologicalTools)))
	parts = append(parts, fmt.Sprintf("- Stakeholder network: %s", yesNo(res.StakeholderNetwork)))
	parts = append(parts, fmt.Sprintf("- Historical data: %s", yesNo(res.HistoricalData)))
	parts = append(parts, fmt.Sprintf("- Other resources: %s", orNone(strings.Join(res.CustomResources, ", "))))

	parts = append(parts, "\nAvailable Techniques:")
	for _, t := range catalog.All() {
		parts = append(parts, fmt.Sprintf("- id=%s | name=%s | complexity=%d | category=%s", t.ID, t.Name, t.Complexity, t.Category))
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, fmt.Sprintf("- Select between %d and %d techniques from the list above", minTechniques, maxTechniques))
	parts = append(parts, "- Use only the ids listed above")
	parts = append(parts, "- Order them into a coherent sequence, sequenceOrder starting at 1")
	parts = append(parts, "- Justify each choice against the study profile")
	parts = append(parts, "- Avoid recommending near-identical techniques")

	parts = append(parts, "\nRespond with JSON only, using exactly this schema:")
	parts = append(parts, responseSchemaHint)

	return strings.Join(parts, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
