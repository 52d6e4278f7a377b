package events

import (
	"strconv"

	"github.com/google/uuid"
)

// newID mints a correlation id for an emitted event so downstream indexers
// can deduplicate replayed blocks.
func newID() string {
	return uuid.NewString()
}

func formatBalance(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatEra(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func build(typ string, attrs map[string]string) *Event {
	return &Event{Type: typ, ID: newID(), Attributes: attrs}
}
