package types

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ReplicationTarget holds the destination coordinates of a mirror table. It is
// embedded in the mirror table's COMMENT so the storage engine can resolve
// where to forward rows after a server restart, without process-level state.
type ReplicationTarget struct {
	Hosts    string `mapstructure:"scylla_hosts"`
	Keyspace string `mapstructure:"scylla_keyspace"`
	Table    string `mapstructure:"scylla_table"`
	Verbose  bool   `mapstructure:"scylla_verbose"`
}

// Comment renders the target as the key=value;key=value string stored in the
// mirror table COMMENT.
func (t ReplicationTarget) Comment() string {
	parts := []string{
		"scylla_hosts=" + t.Hosts,
		"scylla_keyspace=" + t.Keyspace,
		"scylla_table=" + t.Table,
	}
	if t.Verbose {
		parts = append(parts, "scylla_verbose=true")
	}
	return strings.Join(parts, ";")
}

// ParseReplicationTarget decodes a mirror table COMMENT back into a target.
func ParseReplicationTarget(comment string) (*ReplicationTarget, error) {
	raw := make(map[string]interface{})
	for _, pair := range strings.Split(comment, ";") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed replication target entry %q", pair)
		}
		raw[kv[0]] = kv[1]
	}

	var target ReplicationTarget
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &target,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding replication target %q: %w", comment, err)
	}
	return &target, nil
}
