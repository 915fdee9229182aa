package mariadb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	items := []struct {
		name   string
		quoted string
	}{
		{"animals", "`animals`"},
		{"order", "`order`"},
		{"Mixed Case", "`Mixed Case`"},
		{"with`tick", "`with``tick`"},
	}

	for _, item := range items {
		assert.Equal(t, item.quoted, quoteIdent(item.name))
	}
}
