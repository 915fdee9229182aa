//go:build integration
// +build integration

package migration

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/datastax/mariadb-scylla-migrator/config"
	"github.com/datastax/mariadb-scylla-migrator/db"
	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/datastax/mariadb-scylla-migrator/mariadb"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func integrationTestsEnabled() bool {
	return os.Getenv("MIGRATOR_INTEGRATION") != ""
}

func integrationConfig() *config.MigratorConfig {
	cfg := config.NewMigratorConfigWithLogger(log.NewNopLogger())
	if host := os.Getenv("MIGRATOR_MARIADB_HOST"); host != "" {
		cfg.WithMariaDBHost(host)
	}
	if password := os.Getenv("MIGRATOR_MARIADB_PASSWORD"); password != "" {
		cfg.WithMariaDBPassword(password)
	}
	if hosts := os.Getenv("MIGRATOR_SCYLLA_HOSTS"); hosts != "" {
		cfg.WithScyllaHosts(strings.Split(hosts, ","))
	}
	return cfg
}

var _ = Describe("Migrator", func() {
	BeforeEach(func() {
		if !integrationTestsEnabled() {
			Skip("Integration tests are not enabled")
		}
	})

	It("Should set up replication for every source table and be re-runnable", func() {
		cfg := integrationConfig()
		logger := cfg.Logger()

		source, err := mariadb.NewClient(cfg.SourceConfig(), logger)
		Expect(err).ToNot(HaveOccurred())
		defer source.Close()

		target, err := db.NewDb(logger, cfg.ScyllaUsername(), cfg.ScyllaPassword(), cfg.ScyllaPort(), cfg.ScyllaHosts()...)
		Expect(err).ToNot(HaveOccurred())
		defer target.Close()

		migrator := NewMigrator(cfg, source, target)

		summary, err := migrator.Run(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Failed()).To(Equal(0))

		// Re-running the whole setup must not fail or duplicate objects
		summary, err = migrator.Run(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Failed()).To(Equal(0))

		for _, result := range summary.Results {
			if result.Skipped {
				continue
			}
			rows, err := target.SampleRows(cfg.Keyspace(), result.Table, 5)
			Expect(err).ToNot(HaveOccurred())
			if result.RowsCopied > 0 {
				Expect(rows).ToNot(BeEmpty())
			}
		}
	})
})

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Migration integration test suite")
}
