package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex mo_01HZX3V6T2J4M8ZK2R9Q0W5C7B
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_COMPANY           = "comp"
	UUID_PREFIX_CLIENT            = "client"
	UUID_PREFIX_FACILITY_PROFILE  = "fac"
	UUID_PREFIX_SEASONAL_RULE     = "season"
	UUID_PREFIX_MONTHLY_OVERRIDE  = "mo"
	UUID_PREFIX_SERVICE_LINE_ITEM = "sli"
)
