package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "techniques.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "version": "1.0",
	  "techniques": [
	    {"id": "delphi", "name": "Delphi Method", "complexity": 4, "category": "participatory", "tags": ["participatory"]}
	  ]
	}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Techniques, 1)
	assert.Equal(t, "Delphi Method", reg.Techniques[0].Name)
	assert.Equal(t, []string{"participatory"}, reg.Techniques[0].Tags)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"techniques": [`), 0o600))
	_, err = LoadRegistry(path)
	assert.ErrorContains(t, err, "parse registry")
}

func TestRegistry_AddUpdateValidate(t *testing.T) {
	reg := &TechniqueRegistry{Version: "1.0.0"}
	assert.ErrorContains(t, reg.Validate(), "no techniques")

	require.NoError(t, reg.Add(Technique{ID: "scan", Name: "Horizon Scanning", Complexity: 2, Category: "exploratory"}))
	assert.ErrorContains(t, reg.Add(Technique{ID: "scan"}), "already exists")
	assert.NotEmpty(t, reg.LastUpdated)

	require.NoError(t, reg.Update("scan", "tags", "workshop, participatory ,"))
	assert.Equal(t, []string{"workshop", "participatory"}, reg.Techniques[0].Tags)
	require.NoError(t, reg.Update("scan", "complexity", "3"))
	assert.Equal(t, 3, reg.Techniques[0].Complexity)

	assert.ErrorContains(t, reg.Update("scan", "complexity", "high"), "invalid complexity")
	assert.ErrorContains(t, reg.Update("scan", "colour", "x"), "unknown field")
	assert.ErrorContains(t, reg.Update("nope", "name", "x"), "not found")

	require.NoError(t, reg.Validate())

	require.NoError(t, reg.Update("scan", "complexity", "9"))
	assert.ErrorContains(t, reg.Validate(), "outside 1-5")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "techniques.json")
	reg := &TechniqueRegistry{Version: "1.0.0", Techniques: []Technique{{ID: "a", Name: "A", Complexity: 1, Category: "exploratory"}}}

	require.NoError(t, Save(reg, path))
	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg, loaded)
}
