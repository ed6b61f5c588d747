// internal/recommendation/dedup/dedup.go
package dedup

import (
	"strings"

	"foresight-workers/internal/models"
)

// DefaultThreshold is the overlap above which two same-category techniques
// count as near-duplicates.
const DefaultThreshold = 0.7

// Deduplicator drops near-duplicate recommendations, keeping the first of
// each group. Order of the survivors is preserved.
type Deduplicator struct {
	threshold float64
}

func New(threshold float64) *Deduplicator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Deduplicator{threshold: threshold}
}

// Filter returns the surviving recommendations and how many were removed.
// Entries whose technique is missing from the catalog are kept as-is.
func (d *Deduplicator) Filter(recs []models.Recommendation, catalog *models.Catalog) ([]models.Recommendation, int) {
	kept := make([]models.Recommendation, 0, len(recs))
	accepted := make([]models.TechniqueDescriptor, 0, len(recs))

	for _, rec := range recs {
		tech, ok := catalog.Lookup(rec.TechniqueID)
		if !ok {
			kept = append(kept, rec)
			continue
		}
		if d.isDuplicate(tech, accepted) {
			continue
		}
		kept = append(kept, rec)
		accepted = append(accepted, tech)
	}

	return kept, len(recs) - len(kept)
}

func (d *Deduplicator) isDuplicate(candidate models.TechniqueDescriptor, accepted []models.TechniqueDescriptor) bool {
	for _, a := range accepted {
		if a.Category != candidate.Category {
			continue
		}
		if LexicalOverlap(a.Name, candidate.Name) > d.threshold {
			return true
		}
	}
	return false
}

// LexicalOverlap is the number of distinct lowercase whitespace tokens the
// two names share, divided by the larger token count.
func LexicalOverlap(a, b string) float64 {
	ta := strings.Fields(strings.ToLower(a))
	tb := strings.Fields(strings.ToLower(b))

	denom := len(ta)
	if len(tb) > denom {
		denom = len(tb)
	}
	if denom == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(ta))
	for _, tok := range ta {
		set[tok] = struct{}{}
	}
	shared := 0
	for _, tok := range tb {
		if _, ok := set[tok]; ok {
			shared++
			delete(set, tok)
		}
	}
	return float64(shared) / float64(denom)
}
