package migration

import (
	"context"

	"github.com/datastax/mariadb-scylla-migrator/db"
	"github.com/datastax/mariadb-scylla-migrator/types"
	"github.com/stretchr/testify/mock"
)

type SourceMock struct {
	mock.Mock
}

func (o *SourceMock) ListTables(ctx context.Context, database string) ([]string, error) {
	args := o.Called(ctx, database)
	return args.Get(0).([]string), args.Error(1)
}

func (o *SourceMock) DescribeTable(ctx context.Context, database string, table string) ([]types.Column, error) {
	args := o.Called(ctx, database, table)
	return args.Get(0).([]types.Column), args.Error(1)
}

func (o *SourceMock) TableComment(ctx context.Context, database string, table string) (string, error) {
	args := o.Called(ctx, database, table)
	return args.String(0), args.Error(1)
}

func (o *SourceMock) EnsureDatabase(ctx context.Context, name string) error {
	args := o.Called(ctx, name)
	return args.Error(0)
}

func (o *SourceMock) ExecDDL(ctx context.Context, ddl string) error {
	args := o.Called(ctx, ddl)
	return args.Error(0)
}

func (o *SourceMock) RowCount(ctx context.Context, database string, table string) (int64, error) {
	args := o.Called(ctx, database, table)
	return args.Get(0).(int64), args.Error(1)
}

func (o *SourceMock) CopyTable(ctx context.Context, sourceDatabase string, mirrorDatabase string, table string) (int64, error) {
	args := o.Called(ctx, sourceDatabase, mirrorDatabase, table)
	return args.Get(0).(int64), args.Error(1)
}

type TargetMock struct {
	mock.Mock
}

func (o *TargetMock) CreateKeyspaceIfNotExists(name string, replicationFactor int) (bool, error) {
	args := o.Called(name, replicationFactor)
	return args.Bool(0), args.Error(1)
}

func (o *TargetMock) CreateTableIfNotExists(info *db.CreateTableInfo, options *db.QueryOptions) (bool, error) {
	args := o.Called(info, options)
	return args.Bool(0), args.Error(1)
}

func (o *TargetMock) SampleRows(keyspace string, table string, limit int) ([]map[string]interface{}, error) {
	args := o.Called(keyspace, table, limit)
	return args.Get(0).([]map[string]interface{}), args.Error(1)
}
