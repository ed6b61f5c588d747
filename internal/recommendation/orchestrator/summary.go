// internal/recommendation/orchestrator/summary.go
package orchestrator

import (
	"fmt"
	"strings"

	"foresight-workers/internal/models"
)

var durationByComplexity = map[models.ObjectiveComplexity]string{
	models.ComplexityLow:    "1-3 months",
	models.ComplexityMedium: "3-6 months",
	models.ComplexityHigh:   "6-12 months",
}

const defaultDuration = "3-6 months"

// estimateDuration prefers the profile's own estimate.
func estimateDuration(profile *models.StudyProfile) string {
	if est := strings.TrimSpace(profile.EstimatedTime); est != "" {
		return est
	}
	if d, ok := durationByComplexity[profile.ObjectiveComplexity]; ok {
		return d
	}
	return defaultDuration
}

func describe(profile *models.StudyProfile, recs []models.Recommendation, catalog *models.Catalog) string {
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		if t, ok := catalog.Lookup(r.TechniqueID); ok {
			names = append(names, t.Name)
		}
	}

	title := strings.TrimSpace(profile.Title)
	if title == "" {
		title = "the study"
	} else {
		title = fmt.Sprintf("%q", title)
	}

	return fmt.Sprintf("Sequence of %d techniques for %s (%s scope, %s objective complexity, %s team): %s.",
		len(recs), title, orUnspecified(string(profile.Scope)), orUnspecified(string(profile.ObjectiveComplexity)),
		orUnspecified(string(profile.TeamExperience)), strings.Join(names, " → "))
}

func orUnspecified(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
