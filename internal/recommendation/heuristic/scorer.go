// internal/recommendation/heuristic/scorer.go
package heuristic

import (
	"sort"
	"strings"

	"foresight-workers/internal/models"
)

const (
	// DefaultTopN is how many techniques the fallback path recommends.
	DefaultTopN = 5

	// scoreBucketWidth maps uncategorised techniques to an order by score.
	scoreBucketWidth = 20
)

// DefaultCategoryOrder places each known category in the study roadmap.
var DefaultCategoryOrder = map[string]int{
	models.CategoryExploratory:   1,
	models.CategoryStructural:    2,
	models.CategoryParticipatory: 3,
	models.CategoryValidation:    4,
}

// CompatibilityScore is the scorer's per-technique working value.
type CompatibilityScore struct {
	TechniqueID   string
	Score         int
	Triggered     []RuleID
	SequenceOrder int
}

// Scorer is the deterministic recommender. It holds no state beyond its
// settings and never fails on a non-empty catalog.
type Scorer struct {
	topN          int
	categoryOrder map[string]int
}

type Option func(*Scorer)

// WithTopN sets the selection size, capped at models.MaxRecommendations.
// Non-positive values keep the default.
func WithTopN(n int) Option {
	return func(s *Scorer) {
		switch {
		case n > models.MaxRecommendations:
			s.topN = models.MaxRecommendations
		case n > 0:
			s.topN = n
		}
	}
}

// WithCategoryOrder replaces the category to sequence mapping.
func WithCategoryOrder(order map[string]int) Option {
	return func(s *Scorer) {
		if len(order) == 0 {
			return
		}
		m := make(map[string]int, len(order))
		for k, v := range order {
			m[strings.ToLower(k)] = v
		}
		s.categoryOrder = m
	}
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		topN:          DefaultTopN,
		categoryOrder: DefaultCategoryOrder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreTechnique evaluates every rule against one technique.
func (s *Scorer) ScoreTechnique(profile *models.StudyProfile, t *models.TechniqueDescriptor) CompatibilityScore {
	cs := CompatibilityScore{TechniqueID: t.ID}
	for _, r := range rules {
		if r.applies(profile, t) {
			cs.Score += r.points
			cs.Triggered = append(cs.Triggered, r.id)
		}
	}
	cs.SequenceOrder = s.sequenceOrder(t.Category, cs.Score)
	return cs
}

func (s *Scorer) sequenceOrder(category string, score int) int {
	if order, ok := s.categoryOrder[strings.ToLower(category)]; ok && order >= 1 {
		return order
	}
	return score/scoreBucketWidth + 1
}

// Rank scores the whole catalog and returns the topN by score, ties kept in
// catalog order.
func (s *Scorer) Rank(profile *models.StudyProfile, catalog *models.Catalog) []CompatibilityScore {
	techniques := catalog.All()
	scores := make([]CompatibilityScore, 0, len(techniques))
	for i := range techniques {
		scores = append(scores, s.ScoreTechnique(profile, &techniques[i]))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > s.topN {
		scores = scores[:s.topN]
	}
	return scores
}

// Recommend returns the fallback recommendations, stably ordered by
// sequenceOrder. An empty catalog yields an empty slice.
func (s *Scorer) Recommend(profile *models.StudyProfile, catalog *models.Catalog) []models.Recommendation {
	ranked := s.Rank(profile, catalog)
	recs := make([]models.Recommendation, 0, len(ranked))
	for _, cs := range ranked {
		recs = append(recs, models.Recommendation{
			TechniqueID:   cs.TechniqueID,
			Justification: Justification(cs.Triggered),
			SequenceOrder: cs.SequenceOrder,
		})
	}
	SortBySequence(recs)
	return recs
}

// SortBySequence orders recommendations by sequenceOrder ascending, keeping
// the relative order of equal entries.
func SortBySequence(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SequenceOrder < recs[j].SequenceOrder
	})
}
