package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	log2 "log"
	"os"
	"strings"

	"github.com/datastax/mariadb-scylla-migrator/config"
	"github.com/datastax/mariadb-scylla-migrator/db"
	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/datastax/mariadb-scylla-migrator/mariadb"
	"github.com/datastax/mariadb-scylla-migrator/migration"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment variables prefixed with "MIGRATOR_" can override settings e.g. "MIGRATOR_SCYLLA_HOSTS"
const envVarPrefix = "migrator"

var cfgFile string
var logger log.Logger

var migrateCmd = &cobra.Command{
	Use:   os.Args[0] + " [OPTIONS]",
	Short: "Sets up trigger-based replication from MariaDB to ScyllaDB",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(getStringSlice("scylla-hosts")) == 0 {
			return errors.New("scylla hosts are required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg := createConfig()

		if err := cfg.Validate(); err != nil {
			logger.Fatal("invalid configuration",
				"error", err)
		}

		source, err := mariadb.NewClient(cfg.SourceConfig(), logger)
		if err != nil {
			logger.Fatal("unable to connect to mariadb",
				"host", cfg.MariaDBHost(),
				"error", err)
		}
		defer source.Close()
		logger.Info("connected to mariadb", "host", cfg.MariaDBHost())

		target, err := db.NewDb(logger, cfg.ScyllaUsername(), cfg.ScyllaPassword(), cfg.ScyllaPort(), cfg.ScyllaHosts()...)
		if err != nil {
			logger.Fatal("unable to connect to scylladb",
				"hosts", cfg.ScyllaHosts(),
				"error", err)
		}
		defer target.Close()
		logger.Info("connected to scylladb", "hosts", cfg.ScyllaHosts())

		summary, err := migration.NewMigrator(cfg, source, target).Run(context.Background())
		if err != nil {
			logger.Fatal("migration run failed",
				"error", err)
		}

		summary.Log(logger)
	},
}

// Execute runs the migration setup command
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := migrateCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "config file")

	// Source flags
	flags.String("mariadb-host", "127.0.0.1", "MariaDB host")
	flags.Int("mariadb-port", 3306, "MariaDB port")
	flags.StringP("mariadb-username", "u", "root", "MariaDB user")
	flags.StringP("mariadb-password", "p", "", "MariaDB user's password")
	flags.String("mariadb-database", "testdb", "MariaDB source database")
	flags.String("mirror-database", "scylla_db", "MariaDB database holding the ScyllaDB-backed mirror tables")

	// Target flags
	flags.StringSliceP("scylla-hosts", "t", []string{"localhost"}, "hosts for connecting to ScyllaDB")
	flags.Int("scylla-port", 9042, "ScyllaDB CQL port")
	flags.String("scylla-username", "", "connect with ScyllaDB username")
	flags.String("scylla-password", "", "ScyllaDB user's password")
	flags.String("keyspace", "migration", "ScyllaDB keyspace receiving the mirrored tables")
	flags.String("scylla-engine-host", "scylladb-migration-target", "host the mirror table storage engine uses to reach ScyllaDB")
	flags.Int("replication-factor", 1, "replication factor of the target keyspace")

	flags.Bool("verbose", false, "emit debug signals from the generated triggers")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := migrateCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createConfig() *config.MigratorConfig {
	return config.NewMigratorConfigWithLogger(logger).
		WithMariaDBHost(viper.GetString("mariadb-host")).
		WithMariaDBPort(viper.GetInt("mariadb-port")).
		WithMariaDBUsername(viper.GetString("mariadb-username")).
		WithMariaDBPassword(viper.GetString("mariadb-password")).
		WithSourceDatabase(viper.GetString("mariadb-database")).
		WithMirrorDatabase(viper.GetString("mirror-database")).
		WithScyllaHosts(getStringSlice("scylla-hosts")).
		WithScyllaPort(viper.GetInt("scylla-port")).
		WithScyllaUsername(viper.GetString("scylla-username")).
		WithScyllaPassword(viper.GetString("scylla-password")).
		WithKeyspace(viper.GetString("keyspace")).
		WithEngineHost(viper.GetString("scylla-engine-host")).
		WithReplicationFactor(viper.GetInt("replication-factor")).
		WithVerbose(viper.GetBool("verbose"))
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		result = append(result, split...)
	}
	return result, nil
}
