// internal/models/recommendation.go
package models

import "time"

// Recommendation places one catalog technique in the study roadmap.
type Recommendation struct {
	TechniqueID   string `json:"techniqueId"`
	Justification string `json:"justification"`
	SequenceOrder int    `json:"sequenceOrder"`
}

// MaxRecommendations bounds every recommendation list the engine returns.
const MaxRecommendations = 7

// Analysis path labels, used for results and metrics.
const (
	PathAI        = "ai"
	PathHeuristic = "heuristic"
)

type StudyProfileResult struct {
	AnalysisID                string           `json:"analysisId"`
	Profile                   StudyProfile     `json:"profile"`
	RecommendedTechniques     []Recommendation `json:"recommendedTechniques"`
	AnalysisDescription       string           `json:"analysisDescription"`
	EstimatedDuration         string           `json:"estimatedDuration"`
	TotalTechniquesConsidered int              `json:"totalTechniquesConsidered"`
	FilteredSimilarTechniques int              `json:"filteredSimilarTechniques"`
	UsedFallback              bool             `json:"usedFallback"`
	AIQuery                   string           `json:"aiQuery,omitempty"`
	FallbackReason            string           `json:"fallbackReason,omitempty"`
	CreatedAt                 time.Time        `json:"createdAt"`
}

// Path reports which route produced the result.
func (r *StudyProfileResult) Path() string {
	if r.UsedFallback {
		return PathHeuristic
	}
	return PathAI
}
