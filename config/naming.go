package config

import (
	"regexp"

	"github.com/iancoleman/strcase"
)

// NamingConvention decides how source identifiers are rendered on the target
// store.
type NamingConvention interface {
	ToCQLTable(name string) string
	ToCQLColumn(name string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

// ToCQLTable lower-snake-cases the table name. CQL folds unquoted identifiers
// to lower case, so mixed case source names are normalized once at setup time
// instead of becoming case sensitive quoted names.
func (n *defaultNaming) ToCQLTable(name string) string {
	return strcase.ToSnake(name)
}

func (n *defaultNaming) ToCQLColumn(name string) string {
	return strcase.ToSnake(name)
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidIdentifier reports whether name is usable as an unquoted identifier on
// both engines.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
