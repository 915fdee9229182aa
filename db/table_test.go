package db

import (
	"testing"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/datastax/mariadb-scylla-migrator/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func animalsColumns() []types.Column {
	return []types.Column{
		{Name: "animal_id", Type: "int(11)", PrimaryKey: true},
		{Name: "name", Type: "varchar(50)", Nullable: true},
		{Name: "weight_kg", Type: "decimal(10,2)", Nullable: true},
	}
}

func TestCreateTableIfNotExists(t *testing.T) {
	sessionMock := SessionMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	sessionMock.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := db.CreateTableIfNotExists(&CreateTableInfo{
		Keyspace: "migration",
		Table:    "animals",
		Columns:  animalsColumns(),
	}, NewQueryOptions())

	assert.Nil(t, err)
	assert.True(t, created)

	expected := `CREATE TABLE IF NOT EXISTS "migration"."animals" ` +
		`("animal_id" int, "name" text, "weight_kg" decimal, PRIMARY KEY ("animal_id"))`
	sessionMock.AssertCalled(t, "Execute", expected, mock.Anything, mock.Anything)
	sessionMock.AssertExpectations(t)
}

func TestCreateTableIfNotExistsCompositeKey(t *testing.T) {
	sessionMock := SessionMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	sessionMock.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	columns := []types.Column{
		{Name: "tenant_id", Type: "int(11)", PrimaryKey: true},
		{Name: "user_id", Type: "bigint(20)", PrimaryKey: true},
		{Name: "email", Type: "varchar(255)", Nullable: true},
	}

	_, err := db.CreateTableIfNotExists(&CreateTableInfo{
		Keyspace: "migration",
		Table:    "accounts",
		Columns:  columns,
	}, NewQueryOptions())

	assert.Nil(t, err)
	expected := `CREATE TABLE IF NOT EXISTS "migration"."accounts" ` +
		`("tenant_id" int, "user_id" bigint, "email" text, PRIMARY KEY ("tenant_id", "user_id"))`
	sessionMock.AssertCalled(t, "Execute", expected, mock.Anything, mock.Anything)
}

func TestCreateTableIfNotExistsNoPrimaryKey(t *testing.T) {
	sessionMock := SessionMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	columns := []types.Column{
		{Name: "name", Type: "varchar(50)", Nullable: true},
	}

	created, err := db.CreateTableIfNotExists(&CreateTableInfo{
		Keyspace: "migration",
		Table:    "no_key",
		Columns:  columns,
	}, NewQueryOptions())

	assert.False(t, created)
	assert.ErrorIs(t, err, types.ErrNoPrimaryKey)
	sessionMock.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTableIfNotExistsNoColumns(t *testing.T) {
	sessionMock := SessionMock{}
	db := NewDbWithSession(&sessionMock, log.NewNopLogger())

	created, err := db.CreateTableIfNotExists(&CreateTableInfo{
		Keyspace: "migration",
		Table:    "empty",
	}, NewQueryOptions())

	assert.False(t, created)
	assert.ErrorIs(t, err, types.ErrNoColumns)
	sessionMock.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}
