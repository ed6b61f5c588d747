package catalog

import (
	"context"
	"errors"
	"testing"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryPattern = `SELECT id, name, complexity, category, tags, objectives, applications, time_horizon, participants\s+FROM techniques\s+WHERE active = true\s+ORDER BY id`

var columns = []string{"id", "name", "complexity", "category", "tags", "objectives", "applications", "time_horizon", "participants"}

func TestPostgresSource_Techniques(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(columns).
		AddRow("delphi", "Delphi Method", 4, "participatory", []byte(`["participatory"]`), []byte(`["consensus"]`), nil, "long", "experts").
		AddRow("broken", "Broken", 9, "structural", nil, nil, nil, nil, nil).
		AddRow("scan", "Horizon Scanning", 2, nil, []byte(`not-json`), nil, []byte(`["policy"]`), nil, nil)
	mock.ExpectQuery(queryPattern).WillReturnRows(rows)

	src := NewPostgresSource(db, logger.NewTestLogger(t))
	techniques, err := src.Techniques(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, techniques, 2)

	assert.Equal(t, "delphi", techniques[0].ID)
	assert.Equal(t, []string{"participatory"}, techniques[0].Tags)
	assert.Equal(t, []string{"consensus"}, techniques[0].Objectives)
	assert.Equal(t, []string{}, techniques[0].Applications)
	assert.Equal(t, "long", techniques[0].TimeHorizon)
	assert.Equal(t, "experts", techniques[0].Participants)

	assert.Equal(t, "scan", techniques[1].ID)
	assert.Empty(t, techniques[1].Category)
	assert.Equal(t, []string{}, techniques[1].Tags)
	assert.Equal(t, []string{"policy"}, techniques[1].Applications)
}

func TestPostgresSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(queryPattern).WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresSource(db, logger.NewNoOpLogger()).Techniques(context.Background())
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.Equal(t, "connection refused", stdErr.Details)
}

func TestPostgresSource_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(columns).
		AddRow("scan", "Horizon Scanning", 2, "exploratory", nil, nil, nil, nil, nil).
		RowError(0, errors.New("network blip"))
	mock.ExpectQuery(queryPattern).WillReturnRows(rows)

	_, err = NewPostgresSource(db, logger.NewNoOpLogger()).Techniques(context.Background())
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "network blip")
}
