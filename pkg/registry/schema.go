// pkg/registry/schema.go
package registry

// TechniqueRegistry is the on-disk technique catalog used when no database
// is configured.
type TechniqueRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Techniques  []Technique `json:"techniques"`
}

type Technique struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Complexity   int      `json:"complexity"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Objectives   []string `json:"objectives"`
	Applications []string `json:"applications"`
	TimeHorizon  string   `json:"timeHorizon"`
	Participants string   `json:"participants"`
}
