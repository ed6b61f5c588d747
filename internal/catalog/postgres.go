// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/models"
)

const techniquesQuery = `
		SELECT id, name, complexity, category, tags, objectives, applications, time_horizon, participants
		FROM techniques
		WHERE active = true
		ORDER BY id`

type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"source": "postgres"}),
	}
}

func (s *PostgresSource) Name() string { return "postgres" }

// Techniques skips rows whose complexity is outside the valid range.
func (s *PostgresSource) Techniques(ctx context.Context) ([]models.TechniqueDescriptor, error) {
	rows, err := s.db.QueryContext(ctx, techniquesQuery)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select techniques", err)
	}
	defer rows.Close()

	var out []models.TechniqueDescriptor
	for rows.Next() {
		var (
			t                                   models.TechniqueDescriptor
			category, timeHorizon, participants sql.NullString
			tags, objectives, applications      []byte
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Complexity, &category, &tags, &objectives, &applications, &timeHorizon, &participants); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan technique", err)
		}

		if t.Complexity < models.MinComplexity || t.Complexity > models.MaxComplexity {
			s.logger.Warn("skipping technique with invalid complexity", map[string]interface{}{
				"techniqueId": t.ID,
				"complexity":  t.Complexity,
			})
			continue
		}

		t.Category = category.String
		t.TimeHorizon = timeHorizon.String
		t.Participants = participants.String
		t.Tags = decodeList(tags)
		t.Objectives = decodeList(objectives)
		t.Applications = decodeList(applications)

		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("iterate techniques", err)
	}

	s.logger.Info("techniques loaded", map[string]interface{}{"count": len(out)})
	return out, nil
}

// decodeList reads a JSON array column; NULL or malformed values become empty.
func decodeList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}
	}
	return list
}
