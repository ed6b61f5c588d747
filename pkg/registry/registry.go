// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func LoadRegistry(path string) (*TechniqueRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TechniqueRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON, creating parent directories.
func Save(reg *TechniqueRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Add appends a technique, rejecting duplicate ids.
func (r *TechniqueRegistry) Add(t Technique) error {
	for _, existing := range r.Techniques {
		if existing.ID == t.ID {
			return fmt.Errorf("technique with ID %s already exists", t.ID)
		}
	}
	r.Techniques = append(r.Techniques, t)
	r.touch()
	return nil
}

// Update sets one scalar field of a technique. List fields take a comma
// separated value.
func (r *TechniqueRegistry) Update(id, field, value string) error {
	for i := range r.Techniques {
		if r.Techniques[i].ID != id {
			continue
		}
		t := &r.Techniques[i]
		switch field {
		case "name":
			t.Name = value
		case "category":
			t.Category = value
		case "complexity":
			c, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid complexity value: %w", err)
			}
			t.Complexity = c
		case "timeHorizon":
			t.TimeHorizon = value
		case "participants":
			t.Participants = value
		case "tags":
			t.Tags = splitList(value)
		case "objectives":
			t.Objectives = splitList(value)
		case "applications":
			t.Applications = splitList(value)
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		r.touch()
		return nil
	}
	return fmt.Errorf("technique with ID %s not found", id)
}

// Validate checks what the recommendation engine relies on.
func (r *TechniqueRegistry) Validate() error {
	if len(r.Techniques) == 0 {
		return fmt.Errorf("registry contains no techniques")
	}

	ids := make(map[string]bool, len(r.Techniques))
	for _, t := range r.Techniques {
		if t.ID == "" {
			return fmt.Errorf("technique missing required field: ID")
		}
		if ids[t.ID] {
			return fmt.Errorf("duplicate technique ID: %s", t.ID)
		}
		ids[t.ID] = true

		if t.Name == "" {
			return fmt.Errorf("technique %s missing required field: Name", t.ID)
		}
		if t.Category == "" {
			return fmt.Errorf("technique %s missing required field: Category", t.ID)
		}
		if t.Complexity < 1 || t.Complexity > 5 {
			return fmt.Errorf("technique %s complexity %d outside 1-5", t.ID, t.Complexity)
		}
	}
	return nil
}

func (r *TechniqueRegistry) touch() {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
