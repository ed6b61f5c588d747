// internal/recommendation/heuristic/rules.go
package heuristic

import (
	"strings"

	"foresight-workers/internal/models"
)

// RuleID identifies a scoring rule. Scores carry rule ids; text is produced
// only when a Recommendation is built.
type RuleID string

const (
	RuleHighComplexity      RuleID = "complexity.high"
	RuleMediumComplexity    RuleID = "complexity.medium"
	RuleLowComplexity       RuleID = "complexity.low"
	RuleExpertTeam          RuleID = "team.expert"
	RuleIntermediateTeam    RuleID = "team.intermediate"
	RuleBeginnerTeam        RuleID = "team.beginner"
	RulePublicParticipatory RuleID = "scope.public_participatory"
	RuleLocalWorkshop       RuleID = "locality.workshop"
	RuleExpertAccess        RuleID = "resources.expert_access"
	RuleNoExpertAccess      RuleID = "resources.no_expert_access"
)

// DefaultJustification is used when no rule fires for a technique.
const DefaultJustification = "General-purpose technique compatible with the study profile"

type rule struct {
	id      RuleID
	points  int
	text    string
	applies func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool
}

var rules = []rule{
	{
		id:     RuleHighComplexity,
		points: 30,
		text:   "advanced technique suited to high-complexity objectives",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.ObjectiveComplexity == models.ComplexityHigh && t.Complexity >= 4
		},
	},
	{
		id:     RuleMediumComplexity,
		points: 25,
		text:   "moderate complexity matches the study objectives",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.ObjectiveComplexity == models.ComplexityMedium && t.Complexity == 3
		},
	},
	{
		id:     RuleLowComplexity,
		points: 20,
		text:   "simple technique suited to low-complexity objectives",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.ObjectiveComplexity == models.ComplexityLow && t.Complexity <= 2
		},
	},
	{
		id:     RuleExpertTeam,
		points: 25,
		text:   "an expert team can run it rigorously",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.TeamExperience == models.ExperienceExpert && t.Complexity >= 4
		},
	},
	{
		id:     RuleIntermediateTeam,
		points: 20,
		text:   "within reach of an intermediate team",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.TeamExperience == models.ExperienceIntermediate && t.Complexity <= 3
		},
	},
	{
		id:     RuleBeginnerTeam,
		points: 25,
		text:   "accessible to a team new to foresight",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.TeamExperience == models.ExperienceBeginner && t.Complexity <= 2
		},
	},
	{
		id:     RulePublicParticipatory,
		points: 15,
		text:   "participatory approach fits a public-scope study",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.Scope == models.ScopePublic && t.IsParticipatory()
		},
	},
	{
		id:     RuleLocalWorkshop,
		points: 10,
		text:   "workshop format works well at local level",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.StateLevel == models.StateLevelLocal && t.IsWorkshop()
		},
	},
	{
		id:     RuleExpertAccess,
		points: 15,
		text:   "draws on the available expert network",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return p.AvailableResources.ExpertAccess && t.Complexity >= 4
		},
	},
	{
		id:     RuleNoExpertAccess,
		points: 10,
		text:   "does not depend on external experts",
		applies: func(p *models.StudyProfile, t *models.TechniqueDescriptor) bool {
			return !p.AvailableResources.ExpertAccess && t.Complexity <= 2
		},
	},
}

var ruleText = func() map[RuleID]string {
	m := make(map[RuleID]string, len(rules))
	for _, r := range rules {
		m[r.id] = r.text
	}
	return m
}()

// Points returns the weight of a rule, 0 for unknown ids.
func Points(id RuleID) int {
	for _, r := range rules {
		if r.id == id {
			return r.points
		}
	}
	return 0
}

// Justification renders triggered rules as one sentence.
func Justification(triggered []RuleID) string {
	if len(triggered) == 0 {
		return DefaultJustification
	}
	parts := make([]string, 0, len(triggered))
	for _, id := range triggered {
		if text, ok := ruleText[id]; ok {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return DefaultJustification
	}
	s := strings.Join(parts, "; ")
	return strings.ToUpper(s[:1]) + s[1:]
}
