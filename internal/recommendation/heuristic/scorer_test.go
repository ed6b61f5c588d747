package heuristic

import (
	"fmt"
	"testing"

	"foresight-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *models.Catalog {
	t.Helper()
	c, err := models.NewCatalog([]models.TechniqueDescriptor{
		{ID: "scan", Name: "Horizon Scanning", Complexity: 2, Category: models.CategoryExploratory},
		{ID: "scen", Name: "Scenario Planning", Complexity: 5, Category: models.CategoryStructural},
		{ID: "delphi", Name: "Delphi Method", Complexity: 4, Category: models.CategoryParticipatory, Tags: []string{"participatory"}},
		{ID: "fw", Name: "Futures Wheel", Complexity: 2, Category: models.CategoryParticipatory, Tags: []string{"workshop", "participatory"}},
		{ID: "cia", Name: "Cross-Impact Analysis", Complexity: 4, Category: models.CategoryValidation},
		{ID: "trend", Name: "Trend Extrapolation", Complexity: 3, Category: "quantitative"},
		{ID: "roadmap", Name: "Technology Roadmapping", Complexity: 3, Category: models.CategoryStructural},
	})
	require.NoError(t, err)
	return c
}

func expertProfile() *models.StudyProfile {
	return &models.StudyProfile{
		Title:               "Energy 2050",
		StateLevel:          models.StateLevelNational,
		Scope:               models.ScopePublic,
		ObjectiveComplexity: models.ComplexityHigh,
		TeamExperience:      models.ExperienceExpert,
		AvailableResources:  models.AvailableResources{ExpertAccess: true},
	}
}

func TestScoreTechnique_HighExpertStructural(t *testing.T) {
	s := NewScorer()
	p := &models.StudyProfile{
		ObjectiveComplexity: models.ComplexityHigh,
		TeamExperience:      models.ExperienceExpert,
		Scope:               models.ScopePrivate,
	}
	tech := &models.TechniqueDescriptor{ID: "scen", Name: "Scenario Planning", Complexity: 5, Category: models.CategoryStructural}

	cs := s.ScoreTechnique(p, tech)

	assert.GreaterOrEqual(t, cs.Score, 55)
	assert.Equal(t, 55, cs.Score)
	assert.Equal(t, []RuleID{RuleHighComplexity, RuleExpertTeam}, cs.Triggered)
	assert.Equal(t, 2, cs.SequenceOrder)
}

func TestScoreTechnique_Rules(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name      string
		profile   models.StudyProfile
		technique models.TechniqueDescriptor
		wantScore int
		wantRules []RuleID
	}{
		{
			name:      "medium complexity exact match",
			profile:   models.StudyProfile{ObjectiveComplexity: models.ComplexityMedium, AvailableResources: models.AvailableResources{ExpertAccess: true}},
			technique: models.TechniqueDescriptor{Complexity: 3},
			wantScore: 25,
			wantRules: []RuleID{RuleMediumComplexity},
		},
		{
			name:      "beginner low complexity without experts",
			profile:   models.StudyProfile{ObjectiveComplexity: models.ComplexityLow, TeamExperience: models.ExperienceBeginner},
			technique: models.TechniqueDescriptor{Complexity: 1},
			wantScore: 20 + 25 + 10,
			wantRules: []RuleID{RuleLowComplexity, RuleBeginnerTeam, RuleNoExpertAccess},
		},
		{
			name:      "intermediate team",
			profile:   models.StudyProfile{TeamExperience: models.ExperienceIntermediate, AvailableResources: models.AvailableResources{ExpertAccess: true}},
			technique: models.TechniqueDescriptor{Complexity: 3},
			wantScore: 20,
			wantRules: []RuleID{RuleIntermediateTeam},
		},
		{
			name:      "public scope and local workshop",
			profile:   models.StudyProfile{Scope: models.ScopePublic, StateLevel: models.StateLevelLocal, AvailableResources: models.AvailableResources{ExpertAccess: true}},
			technique: models.TechniqueDescriptor{Complexity: 3, Category: models.CategoryParticipatory, Tags: []string{"workshop"}},
			wantScore: 15 + 10,
			wantRules: []RuleID{RulePublicParticipatory, RuleLocalWorkshop},
		},
		{
			name:      "municipal level does not earn locality bonus",
			profile:   models.StudyProfile{StateLevel: models.StateLevelMunicipal, AvailableResources: models.AvailableResources{ExpertAccess: true}},
			technique: models.TechniqueDescriptor{Complexity: 3, Tags: []string{"workshop"}},
			wantScore: 0,
		},
		{
			name:      "expert access on complex technique",
			profile:   models.StudyProfile{AvailableResources: models.AvailableResources{ExpertAccess: true}},
			technique: models.TechniqueDescriptor{Complexity: 4},
			wantScore: 15,
			wantRules: []RuleID{RuleExpertAccess},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := s.ScoreTechnique(&tt.profile, &tt.technique)
			assert.Equal(t, tt.wantScore, cs.Score)
			assert.Equal(t, tt.wantRules, cs.Triggered)
		})
	}
}

func TestSequenceOrder_UnknownCategoryUsesScoreBucket(t *testing.T) {
	s := NewScorer()
	assert.Equal(t, 1, s.sequenceOrder("quantitative", 0))
	assert.Equal(t, 1, s.sequenceOrder("quantitative", 19))
	assert.Equal(t, 2, s.sequenceOrder("quantitative", 20))
	assert.Equal(t, 4, s.sequenceOrder("quantitative", 70))
	assert.Equal(t, 3, s.sequenceOrder("Participatory", 70))
}

func TestRecommend_TopFiveSortedBySequence(t *testing.T) {
	s := NewScorer()
	recs := s.Recommend(expertProfile(), testCatalog(t))

	require.Len(t, recs, DefaultTopN)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].SequenceOrder, recs[i].SequenceOrder)
	}
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.SequenceOrder, 1)
		assert.NotEmpty(t, r.Justification)
	}

	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.TechniqueID)
	}
	assert.Contains(t, ids, "scen")
	assert.Contains(t, ids, "delphi")
	assert.Contains(t, ids, "cia")
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	c, err := models.NewCatalog([]models.TechniqueDescriptor{
		{ID: "a", Name: "A", Complexity: 3},
		{ID: "b", Name: "B", Complexity: 3},
		{ID: "c", Name: "C", Complexity: 3},
	})
	require.NoError(t, err)

	ranked := NewScorer(WithTopN(2)).Rank(&models.StudyProfile{}, c)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].TechniqueID)
	assert.Equal(t, "b", ranked[1].TechniqueID)
}

func TestWithTopN_CappedAtSeven(t *testing.T) {
	descriptors := make([]models.TechniqueDescriptor, 0, 10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("t%d", i)
		descriptors = append(descriptors, models.TechniqueDescriptor{ID: id, Name: id, Complexity: 3})
	}
	c, err := models.NewCatalog(descriptors)
	require.NoError(t, err)

	recs := NewScorer(WithTopN(10)).Recommend(&models.StudyProfile{}, c)
	assert.Len(t, recs, models.MaxRecommendations)

	recs = NewScorer(WithTopN(0)).Recommend(&models.StudyProfile{}, c)
	assert.Len(t, recs, DefaultTopN)
}

func TestRecommend_Deterministic(t *testing.T) {
	s := NewScorer()
	c := testCatalog(t)
	p := expertProfile()

	first := s.Recommend(p, c)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, s.Recommend(p, c))
	}
}

func TestRecommend_SmallCatalog(t *testing.T) {
	c, err := models.NewCatalog([]models.TechniqueDescriptor{{ID: "only", Name: "Only", Complexity: 3}})
	require.NoError(t, err)

	recs := NewScorer().Recommend(&models.StudyProfile{}, c)

	require.Len(t, recs, 1)
	assert.Equal(t, DefaultJustification, recs[0].Justification)
	assert.Equal(t, 1, recs[0].SequenceOrder)
}

func TestWithCategoryOrder(t *testing.T) {
	s := NewScorer(WithCategoryOrder(map[string]int{"Validation": 1}))
	assert.Equal(t, 1, s.sequenceOrder(models.CategoryValidation, 0))
	assert.Equal(t, 3, s.sequenceOrder(models.CategoryStructural, 45))
}

func TestJustification(t *testing.T) {
	assert.Equal(t, DefaultJustification, Justification(nil))
	assert.Equal(t,
		"Advanced technique suited to high-complexity objectives; an expert team can run it rigorously",
		Justification([]RuleID{RuleHighComplexity, RuleExpertTeam}))
	assert.Equal(t, DefaultJustification, Justification([]RuleID{"unknown"}))
	assert.Equal(t, 30, Points(RuleHighComplexity))
}
