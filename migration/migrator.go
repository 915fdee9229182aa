package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/datastax/mariadb-scylla-migrator/config"
	"github.com/datastax/mariadb-scylla-migrator/db"
	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/datastax/mariadb-scylla-migrator/mariadb"
	"github.com/datastax/mariadb-scylla-migrator/types"
)

// sampleLimit bounds the verification read issued after the bulk copy.
const sampleLimit = 5

// Source is the subset of the source client the orchestrator depends on.
type Source interface {
	ListTables(ctx context.Context, database string) ([]string, error)
	DescribeTable(ctx context.Context, database string, table string) ([]types.Column, error)
	TableComment(ctx context.Context, database string, table string) (string, error)
	EnsureDatabase(ctx context.Context, name string) error
	ExecDDL(ctx context.Context, ddl string) error
	RowCount(ctx context.Context, database string, table string) (int64, error)
	CopyTable(ctx context.Context, sourceDatabase string, mirrorDatabase string, table string) (int64, error)
}

// Target is the subset of the target client the orchestrator depends on.
type Target interface {
	CreateKeyspaceIfNotExists(name string, replicationFactor int) (bool, error)
	CreateTableIfNotExists(info *db.CreateTableInfo, options *db.QueryOptions) (bool, error)
	SampleRows(keyspace string, table string, limit int) ([]map[string]interface{}, error)
}

// Migrator sequences the per table setup: introspect, ensure keyspace, create
// target table, create mirror table, install triggers, copy existing rows.
// Tables are independent; a failing table is recorded and the run moves on.
type Migrator struct {
	cfg    *config.MigratorConfig
	source Source
	target Target
	naming config.NamingConvention
	logger log.Logger
}

func NewMigrator(cfg *config.MigratorConfig, source Source, target Target) *Migrator {
	return &Migrator{
		cfg:    cfg,
		source: source,
		target: target,
		naming: config.NewDefaultNaming(),
		logger: cfg.Logger(),
	}
}

// Run processes every base table of the source database in name order. Only
// failures that precede per table processing, like listing the tables, fail
// the run itself.
func (m *Migrator) Run(ctx context.Context) (*Summary, error) {
	if err := m.source.EnsureDatabase(ctx, m.cfg.MirrorDatabase()); err != nil {
		return nil, fmt.Errorf("creating mirror database %q: %w", m.cfg.MirrorDatabase(), err)
	}

	tables, err := m.source.ListTables(ctx, m.cfg.SourceDatabase())
	if err != nil {
		return nil, fmt.Errorf("listing tables of %q: %w", m.cfg.SourceDatabase(), err)
	}
	sort.Strings(tables)

	summary := &Summary{}

	if len(tables) == 0 {
		m.logger.Warn("no tables found in source database",
			"database", m.cfg.SourceDatabase())
		return summary, nil
	}

	m.logger.Info("found tables to migrate",
		"database", m.cfg.SourceDatabase(),
		"count", len(tables))

	for _, table := range tables {
		result := m.migrateTable(ctx, table)
		summary.Results = append(summary.Results, result)

		switch {
		case result.Err != nil:
			m.logger.Error("table migration failed",
				"table", table,
				"state", result.State,
				"error", result.Err)
		case result.Skipped:
			m.logger.Warn("table skipped",
				"table", table,
				"reason", result.SkipReason)
		default:
			m.logger.Info("table migrated",
				"table", table,
				"rows", result.RowsCopied)
		}
	}

	return summary, nil
}

func (m *Migrator) migrateTable(ctx context.Context, tableName string) TableResult {
	result := TableResult{Table: tableName}

	columns, err := m.source.DescribeTable(ctx, m.cfg.SourceDatabase(), tableName)
	if err != nil {
		return result.failed("describing table", err)
	}
	if len(columns) == 0 {
		return result.skipped("no columns")
	}
	result.State = StateIntrospected

	table := types.Table{Name: tableName, Columns: columns}
	if !table.HasPrimaryKey() {
		return result.skipped("no primary key")
	}

	if _, err := m.target.CreateKeyspaceIfNotExists(m.cfg.Keyspace(), m.cfg.ReplicationFactor()); err != nil {
		return result.failed("creating keyspace", err)
	}

	targetTable := m.naming.ToCQLTable(tableName)
	if targetTable != tableName {
		m.logger.Warn("target table name normalized",
			"table", tableName,
			"target", targetTable)
	}

	targetColumns, err := m.targetColumns(columns)
	if err != nil {
		return result.skipped(err.Error())
	}

	if _, err := m.target.CreateTableIfNotExists(&db.CreateTableInfo{
		Keyspace: m.cfg.Keyspace(),
		Table:    targetTable,
		Columns:  targetColumns,
	}, db.NewQueryOptions()); err != nil {
		return result.failed("creating target table", err)
	}
	result.State = StateTargetTableReady

	replicationTarget := types.ReplicationTarget{
		Hosts:    m.cfg.EngineHost(),
		Keyspace: m.cfg.Keyspace(),
		Table:    targetTable,
		Verbose:  m.cfg.Verbose(),
	}
	mirrorDDL, err := mariadb.BuildMirrorTableDDL(m.cfg.MirrorDatabase(), tableName, columns, replicationTarget)
	if err != nil {
		if IsSkip(err) {
			return result.skipped(err.Error())
		}
		return result.failed("building mirror table", err)
	}
	if err := m.source.ExecDDL(ctx, mirrorDDL); err != nil {
		return result.failed("creating mirror table", err)
	}
	result.State = StateMirrorTableReady

	m.checkMirrorTarget(ctx, tableName, replicationTarget)

	triggers, err := mariadb.BuildTriggers(table, m.cfg.SourceDatabase(), m.cfg.MirrorDatabase(), m.cfg.Verbose())
	if err != nil {
		if IsSkip(err) {
			return result.skipped(err.Error())
		}
		return result.failed("building triggers", err)
	}
	for _, trigger := range triggers {
		if err := m.source.ExecDDL(ctx, trigger.DropDDL); err != nil {
			return result.failed(fmt.Sprintf("dropping trigger %s", trigger.Name), err)
		}
		if err := m.source.ExecDDL(ctx, trigger.CreateDDL); err != nil {
			return result.failed(fmt.Sprintf("creating trigger %s", trigger.Name), err)
		}
	}
	result.State = StateTriggersInstalled

	count, err := m.source.RowCount(ctx, m.cfg.SourceDatabase(), tableName)
	if err != nil {
		return result.failed("counting rows", err)
	}
	if count == 0 {
		m.logger.Info("source table is empty, skipping bulk copy",
			"table", tableName)
		result.State = StateDataCopied
		return result
	}

	copied, err := m.source.CopyTable(ctx, m.cfg.SourceDatabase(), m.cfg.MirrorDatabase(), tableName)
	if err != nil {
		return result.failed("copying rows", err)
	}
	result.RowsCopied = copied
	m.logger.Info("copied existing rows",
		"table", tableName,
		"rows", copied)
	result.State = StateDataCopied

	if m.verifyTable(targetTable) {
		result.State = StateVerified
	}

	return result
}

// targetColumns renders the source columns under the target naming
// convention. Two source columns may normalize to the same name; that table
// cannot be represented on the target, so the collision is an error.
func (m *Migrator) targetColumns(columns []types.Column) ([]types.Column, error) {
	renamed := make([]types.Column, len(columns))
	seen := make(map[string]string, len(columns))
	for i, column := range columns {
		renamed[i] = column
		renamed[i].Name = m.naming.ToCQLColumn(column.Name)
		if renamed[i].Name != column.Name {
			m.logger.Warn("target column name normalized",
				"column", column.Name,
				"target", renamed[i].Name)
		}
		if previous, ok := seen[renamed[i].Name]; ok {
			return nil, fmt.Errorf("columns %q and %q both normalize to target column %q",
				previous, column.Name, renamed[i].Name)
		}
		seen[renamed[i].Name] = column.Name
	}
	return renamed, nil
}

// checkMirrorTarget reads back the mirror table's comment and compares the
// replication target stored there against the configured one. The conditional
// CREATE never rewrites an existing table's comment, so a re-run with changed
// engine hosts or keyspace keeps replicating to the old target until the
// mirror table is dropped. That condition is reported, not repaired.
func (m *Migrator) checkMirrorTarget(ctx context.Context, tableName string, want types.ReplicationTarget) {
	comment, err := m.source.TableComment(ctx, m.cfg.MirrorDatabase(), tableName)
	if err != nil {
		m.logger.Warn("reading mirror table comment failed",
			"table", tableName,
			"error", err)
		return
	}
	stored, err := types.ParseReplicationTarget(comment)
	if err != nil {
		m.logger.Warn("mirror table comment is not a replication target",
			"table", tableName,
			"comment", comment,
			"error", err)
		return
	}
	if *stored != want {
		m.logger.Warn("existing mirror table points at a different replication target, drop it and re-run to update",
			"table", tableName,
			"stored", stored.Comment(),
			"configured", want.Comment())
	}
}

// verifyTable spot checks that the target table is readable after the copy.
// Any failure here is reported but never fails the table.
func (m *Migrator) verifyTable(targetTable string) bool {
	rows, err := m.target.SampleRows(m.cfg.Keyspace(), targetTable, sampleLimit)
	if err != nil {
		m.logger.Warn("verification read failed",
			"keyspace", m.cfg.Keyspace(),
			"table", targetTable,
			"error", err)
		return false
	}
	m.logger.Debug("verification read",
		"keyspace", m.cfg.Keyspace(),
		"table", targetTable,
		"rows", len(rows))
	return true
}

// IsSkip reports whether err is one of the conditions that skip a table
// rather than failing it.
func IsSkip(err error) bool {
	return errors.Is(err, types.ErrNoPrimaryKey) || errors.Is(err, types.ErrNoColumns)
}
