// internal/workers/foresight/analyze-study-profile/models.go
package analyzestudyprofile

import (
	"encoding/json"

	"foresight-workers/internal/models"
)

// Input carries the raw profile so it can be schema-checked before decoding.
type Input struct {
	Profile json.RawMessage `json:"profile"`
}

type Output struct {
	Result *models.StudyProfileResult `json:"result"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const profileSchema = `{
  "type": "object",
  "required": ["title", "stateLevel", "scope", "objectiveComplexity", "teamExperience", "availableResources"],
  "properties": {
    "title":               {"type": "string", "minLength": 1},
    "description":         {"type": "string"},
    "country":             {"type": "string"},
    "stateLevel":          {"enum": ["national", "regional", "local", "municipal"]},
    "scope":               {"enum": ["public", "private", "mixed"]},
    "objectiveComplexity": {"enum": ["low", "medium", "high"]},
    "teamExperience":      {"enum": ["beginner", "intermediate", "expert"]},
    "timeHorizon":         {"type": "string"},
    "estimatedTime":       {"type": "string"},
    "availableResources": {
      "type": "object",
      "required": ["budget"],
      "properties": {
        "budget":             {"enum": ["low", "medium", "high"]},
        "expertAccess":       {"type": "boolean"},
        "technologicalTools": {"type": "boolean"},
        "stakeholderNetwork": {"type": "boolean"},
        "historicalData":     {"type": "boolean"},
        "customResources":    {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`
