package dedup

import (
	"testing"

	"foresight-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"Delphi Method", "delphi method", 1},
		{"Método Delphi", "Delphi Method Variant", 1.0 / 3.0},
		{"Scenario Planning", "Scenario Planning Workshop", 2.0 / 3.0},
		{"Cross Impact Analysis", "Cross Impact Analysis", 1},
		{"Horizon Scanning", "Backcasting", 0},
		{"", "", 0},
		{"a a a", "a", 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, LexicalOverlap(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, LexicalOverlap(tt.b, tt.a), 1e-9)
		})
	}
}

func catalog(t *testing.T) *models.Catalog {
	t.Helper()
	c, err := models.NewCatalog([]models.TechniqueDescriptor{
		{ID: "delphi", Name: "Método Delphi", Complexity: 4, Category: models.CategoryParticipatory},
		{ID: "delphi-v", Name: "Delphi Method Variant", Complexity: 4, Category: models.CategoryParticipatory},
		{ID: "scen", Name: "Scenario Planning", Complexity: 4, Category: models.CategoryStructural},
		{ID: "scen-ws", Name: "Scenario Planning", Complexity: 3, Category: models.CategoryStructural},
		{ID: "scen-p", Name: "Scenario Planning", Complexity: 3, Category: models.CategoryParticipatory},
		{ID: "cia", Name: "Cross Impact Analysis", Complexity: 4, Category: models.CategoryValidation},
	})
	require.NoError(t, err)
	return c
}

func recs(ids ...string) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(ids))
	for i, id := range ids {
		out = append(out, models.Recommendation{TechniqueID: id, Justification: "j", SequenceOrder: i + 1})
	}
	return out
}

func TestFilter(t *testing.T) {
	c := catalog(t)
	d := New(DefaultThreshold)

	tests := []struct {
		name        string
		input       []models.Recommendation
		wantIDs     []string
		wantRemoved int
	}{
		{
			name:    "low overlap in same category survives",
			input:   recs("delphi", "delphi-v"),
			wantIDs: []string{"delphi", "delphi-v"},
		},
		{
			name:        "identical names in same category drop the later one",
			input:       recs("scen", "cia", "scen-ws"),
			wantIDs:     []string{"scen", "cia"},
			wantRemoved: 1,
		},
		{
			name:        "first occurrence wins",
			input:       recs("scen-ws", "scen"),
			wantIDs:     []string{"scen-ws"},
			wantRemoved: 1,
		},
		{
			name:    "different category never collides",
			input:   recs("scen", "scen-p"),
			wantIDs: []string{"scen", "scen-p"},
		},
		{
			name:    "unknown ids pass through",
			input:   recs("ghost", "scen"),
			wantIDs: []string{"ghost", "scen"},
		},
		{
			name:    "empty input",
			input:   nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, removed := d.Filter(tt.input, c)
			ids := make([]string, 0, len(kept))
			for _, r := range kept {
				ids = append(ids, r.TechniqueID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestFilter_NoSurvivingNearDuplicates(t *testing.T) {
	c := catalog(t)
	kept, _ := New(DefaultThreshold).Filter(recs("scen", "scen-ws", "scen-p", "delphi", "delphi-v", "cia"), c)

	for i := range kept {
		for j := i + 1; j < len(kept); j++ {
			a, _ := c.Lookup(kept[i].TechniqueID)
			b, _ := c.Lookup(kept[j].TechniqueID)
			if a.Category == b.Category {
				assert.LessOrEqual(t, LexicalOverlap(a.Name, b.Name), DefaultThreshold)
			}
		}
	}
}

func TestNew_InvalidThresholdFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultThreshold, New(0).threshold)
	assert.Equal(t, DefaultThreshold, New(2).threshold)
	assert.Equal(t, 0.5, New(0.5).threshold)
}
