package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
)

// MigratorConfig carries every setting of a migration run. It is owned by the
// orchestrator for the run's duration and passed explicitly to each stage.
type MigratorConfig struct {
	mariadbHost     string
	mariadbPort     int
	mariadbUsername string
	mariadbPassword string
	sourceDatabase  string
	mirrorDatabase  string

	scyllaHosts       []string
	scyllaPort        int
	scyllaUsername    string
	scyllaPassword    string
	keyspace          string
	engineHost        string
	replicationFactor int

	verbose bool
	logger  log.Logger
}

// NewMigratorConfigWithLogger returns a config with the defaults of the
// standard two-container setup.
func NewMigratorConfigWithLogger(logger log.Logger) *MigratorConfig {
	return &MigratorConfig{
		mariadbHost:       "127.0.0.1",
		mariadbPort:       3306,
		mariadbUsername:   "root",
		sourceDatabase:    "testdb",
		mirrorDatabase:    "scylla_db",
		scyllaHosts:       []string{"localhost"},
		scyllaPort:        9042,
		keyspace:          "migration",
		engineHost:        "scylladb-migration-target",
		replicationFactor: 1,
		logger:            logger,
	}
}

func (cfg MigratorConfig) MariaDBHost() string {
	return cfg.mariadbHost
}

func (cfg MigratorConfig) SourceDatabase() string {
	return cfg.sourceDatabase
}

func (cfg MigratorConfig) MirrorDatabase() string {
	return cfg.mirrorDatabase
}

func (cfg MigratorConfig) ScyllaHosts() []string {
	return cfg.scyllaHosts
}

func (cfg MigratorConfig) ScyllaPort() int {
	return cfg.scyllaPort
}

func (cfg MigratorConfig) ScyllaUsername() string {
	return cfg.scyllaUsername
}

func (cfg MigratorConfig) ScyllaPassword() string {
	return cfg.scyllaPassword
}

func (cfg MigratorConfig) Keyspace() string {
	return cfg.keyspace
}

// EngineHost is the host the mirror table's storage engine uses to reach the
// target store, typically the target's container name.
func (cfg MigratorConfig) EngineHost() string {
	return cfg.engineHost
}

func (cfg MigratorConfig) ReplicationFactor() int {
	return cfg.replicationFactor
}

func (cfg MigratorConfig) Verbose() bool {
	return cfg.verbose
}

func (cfg MigratorConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *MigratorConfig) WithMariaDBHost(host string) *MigratorConfig {
	cfg.mariadbHost = host
	return cfg
}

func (cfg *MigratorConfig) WithMariaDBPort(port int) *MigratorConfig {
	cfg.mariadbPort = port
	return cfg
}

func (cfg *MigratorConfig) WithMariaDBUsername(username string) *MigratorConfig {
	cfg.mariadbUsername = username
	return cfg
}

func (cfg *MigratorConfig) WithMariaDBPassword(password string) *MigratorConfig {
	cfg.mariadbPassword = password
	return cfg
}

func (cfg *MigratorConfig) WithSourceDatabase(database string) *MigratorConfig {
	cfg.sourceDatabase = database
	return cfg
}

func (cfg *MigratorConfig) WithMirrorDatabase(database string) *MigratorConfig {
	cfg.mirrorDatabase = database
	return cfg
}

func (cfg *MigratorConfig) WithScyllaHosts(hosts []string) *MigratorConfig {
	cfg.scyllaHosts = hosts
	return cfg
}

func (cfg *MigratorConfig) WithScyllaPort(port int) *MigratorConfig {
	cfg.scyllaPort = port
	return cfg
}

func (cfg *MigratorConfig) WithScyllaUsername(username string) *MigratorConfig {
	cfg.scyllaUsername = username
	return cfg
}

func (cfg *MigratorConfig) WithScyllaPassword(password string) *MigratorConfig {
	cfg.scyllaPassword = password
	return cfg
}

func (cfg *MigratorConfig) WithKeyspace(keyspace string) *MigratorConfig {
	cfg.keyspace = keyspace
	return cfg
}

func (cfg *MigratorConfig) WithEngineHost(host string) *MigratorConfig {
	cfg.engineHost = host
	return cfg
}

func (cfg *MigratorConfig) WithReplicationFactor(factor int) *MigratorConfig {
	cfg.replicationFactor = factor
	return cfg
}

func (cfg *MigratorConfig) WithVerbose(verbose bool) *MigratorConfig {
	cfg.verbose = verbose
	return cfg
}

// SourceConfig builds the driver configuration for the source connection.
func (cfg MigratorConfig) SourceConfig() *mysql.Config {
	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.mariadbHost, strconv.Itoa(cfg.mariadbPort))
	c.User = cfg.mariadbUsername
	c.Passwd = cfg.mariadbPassword
	c.DBName = cfg.sourceDatabase
	return c
}

// Validate checks the config before any connection is attempted.
func (cfg MigratorConfig) Validate() error {
	v := validator.New()
	err := v.Struct(struct {
		MariaDBHost       string   `validate:"required"`
		MariaDBPort       int      `validate:"required,gt=0,lte=65535"`
		MariaDBUsername   string   `validate:"required"`
		SourceDatabase    string   `validate:"required"`
		MirrorDatabase    string   `validate:"required,nefield=SourceDatabase"`
		ScyllaHosts       []string `validate:"required,min=1,dive,required"`
		ScyllaPort        int      `validate:"required,gt=0,lte=65535"`
		Keyspace          string   `validate:"required"`
		EngineHost        string   `validate:"required"`
		ReplicationFactor int      `validate:"gt=0"`
	}{
		MariaDBHost:       cfg.mariadbHost,
		MariaDBPort:       cfg.mariadbPort,
		MariaDBUsername:   cfg.mariadbUsername,
		SourceDatabase:    cfg.sourceDatabase,
		MirrorDatabase:    cfg.mirrorDatabase,
		ScyllaHosts:       cfg.scyllaHosts,
		ScyllaPort:        cfg.scyllaPort,
		Keyspace:          cfg.keyspace,
		EngineHost:        cfg.engineHost,
		ReplicationFactor: cfg.replicationFactor,
	})
	if err != nil {
		return err
	}

	for name, value := range map[string]string{
		"keyspace":        cfg.keyspace,
		"source database": cfg.sourceDatabase,
		"mirror database": cfg.mirrorDatabase,
	} {
		if !ValidIdentifier(value) {
			return fmt.Errorf("%s %q is not a valid identifier", name, value)
		}
	}

	return nil
}
