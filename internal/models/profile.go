// internal/models/profile.go
package models

type StateLevel string

const (
	StateLevelNational  StateLevel = "national"
	StateLevelRegional  StateLevel = "regional"
	StateLevelLocal     StateLevel = "local"
	StateLevelMunicipal StateLevel = "municipal"
)

type Scope string

const (
	ScopePublic  Scope = "public"
	ScopePrivate Scope = "private"
	ScopeMixed   Scope = "mixed"
)

type ObjectiveComplexity string

const (
	ComplexityLow    ObjectiveComplexity = "low"
	ComplexityMedium ObjectiveComplexity = "medium"
	ComplexityHigh   ObjectiveComplexity = "high"
)

type TeamExperience string

const (
	ExperienceBeginner     TeamExperience = "beginner"
	ExperienceIntermediate TeamExperience = "intermediate"
	ExperienceExpert       TeamExperience = "expert"
)

type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

type AvailableResources struct {
	Budget             Budget   `json:"budget"`
	ExpertAccess       bool     `json:"expertAccess"`
	TechnologicalTools bool     `json:"technologicalTools"`
	StakeholderNetwork bool     `json:"stakeholderNetwork"`
	HistoricalData     bool     `json:"historicalData"`
	CustomResources    []string `json:"customResources,omitempty"`
}

// StudyProfile describes one foresight study. It is treated as immutable for
// the duration of an analysis.
type StudyProfile struct {
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Country             string              `json:"country"`
	StateLevel          StateLevel          `json:"stateLevel"`
	Scope               Scope               `json:"scope"`
	ObjectiveComplexity ObjectiveComplexity `json:"objectiveComplexity"`
	TeamExperience      TeamExperience      `json:"teamExperience"`
	TimeHorizon         string              `json:"timeHorizon"`
	EstimatedTime       string              `json:"estimatedTime,omitempty"`
	AvailableResources  AvailableResources  `json:"availableResources"`
}
