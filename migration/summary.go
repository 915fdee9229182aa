package migration

import (
	"fmt"

	"github.com/datastax/mariadb-scylla-migrator/log"
)

// State names how far a table's setup progressed.
type State string

const (
	StateIntrospected      State = "Introspected"
	StateTargetTableReady  State = "TargetTableReady"
	StateMirrorTableReady  State = "MirrorTableReady"
	StateTriggersInstalled State = "TriggersInstalled"
	StateDataCopied        State = "DataCopied"
	StateVerified          State = "Verified"
)

// TableResult records the outcome of one table's setup.
type TableResult struct {
	Table      string
	State      State
	Skipped    bool
	SkipReason string
	RowsCopied int64
	Err        error
}

func (r TableResult) Succeeded() bool {
	return r.Err == nil && !r.Skipped
}

func (r TableResult) failed(stage string, err error) TableResult {
	r.Err = fmt.Errorf("%s: %w", stage, err)
	return r
}

func (r TableResult) skipped(reason string) TableResult {
	r.Skipped = true
	r.SkipReason = reason
	return r
}

// Summary aggregates the per table results of a run.
type Summary struct {
	Results []TableResult
}

func (s *Summary) Succeeded() int {
	count := 0
	for _, result := range s.Results {
		if result.Succeeded() {
			count++
		}
	}
	return count
}

func (s *Summary) Skipped() int {
	count := 0
	for _, result := range s.Results {
		if result.Skipped {
			count++
		}
	}
	return count
}

func (s *Summary) Failed() int {
	count := 0
	for _, result := range s.Results {
		if result.Err != nil {
			count++
		}
	}
	return count
}

// Log writes the end of run report: what succeeded, what was skipped and what
// needs a re-run. Partially configured tables are expected to be repaired by
// re-running setup, since every step is independently idempotent.
func (s *Summary) Log(logger log.Logger) {
	for _, result := range s.Results {
		switch {
		case result.Err != nil:
			logger.Error("table needs a re-run",
				"table", result.Table,
				"state", result.State,
				"error", result.Err)
		case result.Skipped:
			logger.Warn("table not migrated",
				"table", result.Table,
				"reason", result.SkipReason)
		default:
			logger.Info("table replicating",
				"table", result.Table,
				"rows_copied", result.RowsCopied)
		}
	}

	logger.Info("migration setup finished",
		"tables", len(s.Results),
		"succeeded", s.Succeeded(),
		"skipped", s.Skipped(),
		"failed", s.Failed())

	if s.Succeeded() > 0 {
		logger.Info("row changes on the source tables now replicate through their triggers",
			"hint", "write to a source table and read the same key back from the keyspace")
	}
	if s.Failed() > 0 {
		logger.Info("re-running setup repairs failed tables",
			"hint", "every step uses IF NOT EXISTS or drop before create")
	}
}
