package db

import (
	"errors"
	"testing"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSampleRows(t *testing.T) {
	sessionMock := SessionMock{}
	resultMock := &ResultMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	rows := []map[string]interface{}{
		{"animal_id": 1, "name": "otter"},
		{"animal_id": 2, "name": "lynx"},
	}

	resultMock.On("Values").Return(rows)
	sessionMock.On("ExecuteIter", mock.Anything, mock.Anything, mock.Anything).Return(resultMock, nil)

	values, err := db.SampleRows("migration", "animals", 5)
	assert.Nil(t, err)
	assert.Equal(t, rows, values)

	sessionMock.AssertCalled(t, "ExecuteIter",
		`SELECT * FROM "migration"."animals" LIMIT 5`, mock.Anything, mock.Anything)
}

func TestSampleRowsError(t *testing.T) {
	sessionMock := SessionMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	sessionMock.On("ExecuteIter", mock.Anything, mock.Anything, mock.Anything).
		Return((*ResultMock)(nil), errors.New("read timeout"))

	values, err := db.SampleRows("migration", "animals", 5)
	assert.Error(t, err)
	assert.Nil(t, values)
}
