package db

import (
	"sort"
	"strings"

	"github.com/datastax/mariadb-scylla-migrator/log"
)

// cqlTypeForBase maps a source base type keyword (the declared type with any
// parameter suffix removed) to the CQL type used on the target table.
var cqlTypeForBase = map[string]string{
	"tinyint":    "tinyint",
	"smallint":   "smallint",
	"mediumint":  "int",
	"int":        "int",
	"bigint":     "bigint",
	"float":      "float",
	"double":     "double",
	"decimal":    "decimal",
	"bit":        "blob",
	"year":       "smallint",
	"varchar":    "text",
	"char":       "text",
	"text":       "text",
	"tinytext":   "text",
	"mediumtext": "text",
	"longtext":   "text",
	"enum":       "text",
	"set":        "text",
	"json":       "text",
	"varbinary":  "blob",
	"binary":     "blob",
	"blob":       "blob",
	"tinyblob":   "blob",
	"mediumblob": "blob",
	"longblob":   "blob",
	"date":       "date",
	"datetime":   "timestamp",
	"timestamp":  "timestamp",
	"time":       "time",
}

// baseTypeKeys holds the mapping keys ordered by descending length so that a
// longer keyword wins over a shorter prefix-colliding one, e.g. "timestamp"
// is tested before "time".
var baseTypeKeys = sortedBaseTypeKeys()

func sortedBaseTypeKeys() []string {
	keys := make([]string, 0, len(cqlTypeForBase))
	for key := range cqlTypeForBase {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// CQLTypeFor converts a source column type string to its CQL equivalent. It is
// total: types it cannot classify fall back to text with a warning naming the
// unknown type, so gaps in the mapping table surface in the logs.
func CQLTypeFor(sourceType string, logger log.Logger) string {
	lowered := strings.ToLower(strings.TrimSpace(sourceType))

	base := lowered
	width := ""
	if i := strings.Index(lowered, "("); i >= 0 {
		base = lowered[:i]
		if j := strings.Index(lowered[i:], ")"); j >= 0 {
			width = lowered[i+1 : i+j]
		}
	}

	// UUIDs are commonly stored as opaque fixed-width columns. The check is
	// shape based, not name based, so false positives are possible. Width is
	// matched on the stripped base so attributes after the declaration, like
	// a character set clause, do not defeat it.
	if (base == "binary" && width == "16") || (base == "char" && width == "36") {
		return "uuid"
	}

	for _, key := range baseTypeKeys {
		if strings.HasPrefix(base, key) {
			return cqlTypeForBase[key]
		}
	}

	logger.Warn("unknown source column type, defaulting to text",
		"type", sourceType)
	return "text"
}
