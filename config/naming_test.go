package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCQLTable(t *testing.T) {
	naming := NewDefaultNaming()

	assert.Equal(t, "animals", naming.ToCQLTable("animals"))
	assert.Equal(t, "user_accounts", naming.ToCQLTable("UserAccounts"))
	assert.Equal(t, "user_accounts", naming.ToCQLTable("userAccounts"))
}

func TestToCQLColumn(t *testing.T) {
	naming := NewDefaultNaming()

	assert.Equal(t, "weight_kg", naming.ToCQLColumn("weight_kg"))
	assert.Equal(t, "first_name", naming.ToCQLColumn("FirstName"))
}

func TestValidIdentifier(t *testing.T) {
	items := []struct {
		name  string
		valid bool
	}{
		{"animals", true},
		{"scylla_db", true},
		{"Table2", true},
		{"", false},
		{"2animals", false},
		{"bad-name", false},
		{"drop table", false},
		{"x;--", false},
	}

	for _, item := range items {
		assert.Equal(t, item.valid, ValidIdentifier(item.name), "identifier %q", item.name)
	}
}
