package config

import (
	"testing"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *MigratorConfig {
	return NewMigratorConfigWithLogger(log.NewNopLogger())
}

func TestMigratorConfigDefaults(t *testing.T) {
	cfg := newTestConfig()

	assert.Equal(t, "testdb", cfg.SourceDatabase())
	assert.Equal(t, "scylla_db", cfg.MirrorDatabase())
	assert.Equal(t, "migration", cfg.Keyspace())
	assert.Equal(t, []string{"localhost"}, cfg.ScyllaHosts())
	assert.Equal(t, 9042, cfg.ScyllaPort())
	assert.Equal(t, "scylladb-migration-target", cfg.EngineHost())
	assert.Equal(t, 1, cfg.ReplicationFactor())
	assert.Nil(t, cfg.Validate())
}

func TestMigratorConfigSourceConfig(t *testing.T) {
	cfg := newTestConfig().
		WithMariaDBHost("db.example.com").
		WithMariaDBPort(3307).
		WithMariaDBUsername("repl").
		WithMariaDBPassword("secret").
		WithSourceDatabase("inventory")

	dsn := cfg.SourceConfig().FormatDSN()
	assert.Contains(t, dsn, "repl:secret@")
	assert.Contains(t, dsn, "tcp(db.example.com:3307)")
	assert.Contains(t, dsn, "/inventory")
}

func TestMigratorConfigValidate(t *testing.T) {
	items := []struct {
		name   string
		modify func(cfg *MigratorConfig)
	}{
		{"empty keyspace", func(cfg *MigratorConfig) { cfg.WithKeyspace("") }},
		{"empty hosts", func(cfg *MigratorConfig) { cfg.WithScyllaHosts(nil) }},
		{"bad port", func(cfg *MigratorConfig) { cfg.WithScyllaPort(-1) }},
		{"bad keyspace identifier", func(cfg *MigratorConfig) { cfg.WithKeyspace("bad-name") }},
		{"bad mirror identifier", func(cfg *MigratorConfig) { cfg.WithMirrorDatabase("x;--") }},
		{"mirror equals source", func(cfg *MigratorConfig) { cfg.WithMirrorDatabase("testdb") }},
		{"bad replication factor", func(cfg *MigratorConfig) { cfg.WithReplicationFactor(0) }},
	}

	for _, item := range items {
		cfg := newTestConfig()
		item.modify(cfg)
		assert.Error(t, cfg.Validate(), item.name)
	}
}

func TestMigratorConfigChaining(t *testing.T) {
	cfg := newTestConfig().
		WithScyllaHosts([]string{"10.0.0.1", "10.0.0.2"}).
		WithKeyspace("mirror_ks").
		WithReplicationFactor(3).
		WithVerbose(true)

	require.Nil(t, cfg.Validate())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.ScyllaHosts())
	assert.Equal(t, "mirror_ks", cfg.Keyspace())
	assert.Equal(t, 3, cfg.ReplicationFactor())
	assert.True(t, cfg.Verbose())
}
