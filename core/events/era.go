package events

// TypeNewEra is emitted on every era boundary.
const TypeNewEra = "era.new"

// NewEra signals that the era clock has advanced.
type NewEra struct {
	Era uint64
}

// EventType implements Typed.
func (NewEra) EventType() string { return TypeNewEra }

// Event converts the payload into the broadcastable Event shape.
func (e NewEra) Event() *Event {
	return build(TypeNewEra, map[string]string{
		"era": formatEra(e.Era),
	})
}
