// internal/recommendation/llm/parser.go
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"foresight-workers/internal/common/validation"
	"foresight-workers/internal/models"
)

// DefaultJustification fills entries the model left unexplained.
const DefaultJustification = "Selected by AI analysis for this study profile"

var payloadSchema = validation.MustCompileSchema(`{
  "type": "object",
  "required": ["recommendedTechniques"],
  "properties": {
    "recommendedTechniques": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["techniqueId"],
        "properties": {
          "techniqueId": {"type": "string", "minLength": 1},
          "justification": {"type": "string"},
          "sequenceOrder": {"type": "number"}
        }
      }
    },
    "analysisDescription": {"type": "string"},
    "estimatedDuration": {"type": "string"}
  }
}`)

type payload struct {
	RecommendedTechniques []payloadEntry `json:"recommendedTechniques"`
	AnalysisDescription   string         `json:"analysisDescription"`
	EstimatedDuration     string         `json:"estimatedDuration"`
}

type payloadEntry struct {
	TechniqueID   string  `json:"techniqueId"`
	Justification string  `json:"justification"`
	SequenceOrder float64 `json:"sequenceOrder"`
}

// Parsed is a validated payload restricted to catalog techniques.
type Parsed struct {
	Recommendations     []models.Recommendation
	AnalysisDescription string
	EstimatedDuration   string
	DroppedUnknown      int
}

// ParseContent turns raw model output into recommendations. maxTechniques
// caps the result and is itself capped at models.MaxRecommendations; entries
// past it are ignored.
func ParseContent(content string, catalog *models.Catalog, maxTechniques int) (*Parsed, error) {
	if maxTechniques <= 0 || maxTechniques > models.MaxRecommendations {
		maxTechniques = models.MaxRecommendations
	}

	obj, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}

	res, err := payloadSchema.ValidateJSON(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrSchema, res.Error())
	}

	var p payload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrParse, err)
	}

	return normalize(&p, catalog, maxTechniques)
}

func normalize(p *payload, catalog *models.Catalog, maxTechniques int) (*Parsed, error) {
	out := &Parsed{
		AnalysisDescription: strings.TrimSpace(p.AnalysisDescription),
		EstimatedDuration:   strings.TrimSpace(p.EstimatedDuration),
	}
	seen := make(map[string]bool, len(p.RecommendedTechniques))

	for _, e := range p.RecommendedTechniques {
		id := strings.TrimSpace(e.TechniqueID)
		if !catalog.Contains(id) {
			out.DroppedUnknown++
			continue
		}
		if seen[id] {
			continue
		}
		if len(out.Recommendations) >= maxTechniques {
			break
		}
		seen[id] = true

		order := int(e.SequenceOrder)
		if order < 1 {
			order = len(out.Recommendations) + 1
		}
		justification := strings.TrimSpace(e.Justification)
		if justification == "" {
			justification = DefaultJustification
		}

		out.Recommendations = append(out.Recommendations, models.Recommendation{
			TechniqueID:   id,
			Justification: justification,
			SequenceOrder: order,
		})
	}

	if len(out.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: none of %d entries reference a catalog technique",
			ErrEmptyValidSet, len(p.RecommendedTechniques))
	}
	return out, nil
}

// ExtractJSONObject strips markdown fences and returns the first balanced
// top-level JSON object in s.
func ExtractJSONObject(s string) (string, error) {
	body := stripFences(s)
	if obj, ok := firstObject(body); ok {
		return obj, nil
	}
	return "", fmt.Errorf("%w: no JSON object in response", ErrParse)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}
	rest := s[start+3:]
	// Drop the info string (```json).
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// firstObject scans bytes, skipping string literals, until the first
// top-level object closes. ASCII delimiters never occur inside multi-byte
// UTF-8 sequences.
func firstObject(s string) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escape := false

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
