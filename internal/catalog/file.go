// internal/catalog/file.go
package catalog

import (
	"context"

	"foresight-workers/internal/models"
	"foresight-workers/pkg/registry"
)

// FileSource reads a technique registry JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file:" + s.path }

func (s *FileSource) Techniques(_ context.Context) ([]models.TechniqueDescriptor, error) {
	reg, err := registry.LoadRegistry(s.path)
	if err != nil {
		return nil, err
	}

	out := make([]models.TechniqueDescriptor, 0, len(reg.Techniques))
	for _, t := range reg.Techniques {
		out = append(out, models.TechniqueDescriptor{
			ID:           t.ID,
			Name:         t.Name,
			Complexity:   t.Complexity,
			Category:     t.Category,
			Tags:         t.Tags,
			Objectives:   t.Objectives,
			Applications: t.Applications,
			TimeHorizon:  t.TimeHorizon,
			Participants: t.Participants,
		})
	}
	return out, nil
}
