package mariadb

import (
	"fmt"
	"strings"

	"github.com/datastax/mariadb-scylla-migrator/types"
)

// Operation identifies the row level change a trigger forwards.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Trigger is an immutable pair of statements that (re)install one replication
// trigger. DropDDL is issued first, so re-running setup replaces any previous
// definition instead of failing on it.
type Trigger struct {
	Name      string
	Operation Operation
	DropDDL   string
	CreateDDL string
}

// TriggerName derives the deterministic trigger name for a table and
// operation.
func TriggerName(table string, op Operation) string {
	return fmt.Sprintf("%s_%s_trigger", table, op)
}

// BuildTriggers emits the insert, update and delete replication triggers for a
// table. Triggers fire AFTER the source row change, so the mirror write is
// only attempted once the source write has succeeded. Values are referenced
// through the trigger's NEW/OLD row context, never interpolated as literals.
func BuildTriggers(table types.Table, sourceDatabase string, mirrorDatabase string, verbose bool) ([]Trigger, error) {
	if len(table.Columns) == 0 {
		return nil, types.ErrNoColumns
	}
	primaryKeys := table.PrimaryKey()
	if len(primaryKeys) == 0 {
		return nil, types.ErrNoPrimaryKey
	}

	names := table.ColumnNames()
	columnList := make([]string, len(names))
	newValueList := make([]string, len(names))
	setList := make([]string, len(names))
	for i, name := range names {
		columnList[i] = quoteIdent(name)
		newValueList[i] = "NEW." + quoteIdent(name)
		setList[i] = fmt.Sprintf("%s = NEW.%s", quoteIdent(name), quoteIdent(name))
	}

	// The predicate keys on OLD values: when a primary key column is itself
	// updated, the mirror row must be located by its pre-update key.
	whereTerms := make([]string, len(primaryKeys))
	for i, pk := range primaryKeys {
		whereTerms[i] = fmt.Sprintf("%s = OLD.%s", quoteIdent(pk.Name), quoteIdent(pk.Name))
	}
	whereClause := strings.Join(whereTerms, " AND ")

	qSource := quoteIdent(sourceDatabase)
	qMirror := quoteIdent(mirrorDatabase)
	qTable := quoteIdent(table.Name)

	triggers := make([]Trigger, 0, 3)
	for _, op := range []Operation{OpInsert, OpUpdate, OpDelete} {
		name := TriggerName(table.Name, op)

		var body string
		switch op {
		case OpInsert:
			body = fmt.Sprintf("INSERT INTO %s.%s (%s)\n    VALUES (%s);",
				qMirror, qTable,
				strings.Join(columnList, ", "),
				strings.Join(newValueList, ", "))
		case OpUpdate:
			body = fmt.Sprintf("UPDATE %s.%s\n    SET %s\n    WHERE %s;",
				qMirror, qTable,
				strings.Join(setList, ", "),
				whereClause)
		case OpDelete:
			body = fmt.Sprintf("DELETE FROM %s.%s WHERE %s;",
				qMirror, qTable, whereClause)
		}

		if verbose {
			body = debugSignal(name, "START") + "\n    " + body + "\n    " + debugSignal(name, "END")
		}

		createDDL := fmt.Sprintf("CREATE TRIGGER %s.%s\nAFTER %s ON %s.%s\nFOR EACH ROW\nBEGIN\n    %s\nEND",
			qSource, quoteIdent(name),
			strings.ToUpper(string(op)),
			qSource, qTable,
			body)

		dropDDL := fmt.Sprintf("DROP TRIGGER IF EXISTS %s.%s", qSource, quoteIdent(name))

		triggers = append(triggers, Trigger{
			Name:      name,
			Operation: op,
			DropDDL:   dropDDL,
			CreateDDL: createDDL,
		})
	}

	return triggers, nil
}

func debugSignal(trigger string, phase string) string {
	return fmt.Sprintf("SIGNAL SQLSTATE '01000' SET MESSAGE_TEXT = 'DEBUG: %s %s';", trigger, phase)
}
