package events

import "strconv"

const (
	// TypeProviderRegistered is emitted on a successful provider registration.
	TypeProviderRegistered = "provider.registered"
	// TypeProviderUnregistered is emitted when a provider leaves the
	// Registered state.
	TypeProviderUnregistered = "provider.unregistered"
	// TypeProviderPerformanceReported is emitted when a fisherman submits a
	// performance report for a provider.
	TypeProviderPerformanceReported = "provider.performanceReported"
)

// ProviderRegistered captures a successful provider registration call.
type ProviderRegistered struct {
	ProviderID string
	Kind       string
	Operator   string
	ChainID    string
}

// EventType implements Typed.
func (ProviderRegistered) EventType() string { return TypeProviderRegistered }

// Event converts the payload into the broadcastable Event shape.
func (e ProviderRegistered) Event() *Event {
	return build(TypeProviderRegistered, map[string]string{
		"provider": e.ProviderID,
		"kind":     e.Kind,
		"operator": e.Operator,
		"chainId":  e.ChainID,
	})
}

// ProviderUnregistered captures a provider leaving the Registered state.
type ProviderUnregistered struct {
	ProviderID string
	Kind       string
}

// EventType implements Typed.
func (ProviderUnregistered) EventType() string { return TypeProviderUnregistered }

// Event converts the payload into the broadcastable Event shape.
func (e ProviderUnregistered) Event() *Event {
	return build(TypeProviderUnregistered, map[string]string{
		"provider": e.ProviderID,
		"kind":     e.Kind,
	})
}

// ProviderPerformanceReported captures a fisherman-submitted performance
// report. Submitting one unconditionally unregisters the provider (see
// DESIGN.md for the reasoning behind codifying that behavior as-is).
type ProviderPerformanceReported struct {
	ProviderID  string
	Kind        string
	Requests    uint64
	SuccessRate uint32 // basis points
	LatencyMs   uint64
}

// EventType implements Typed.
func (ProviderPerformanceReported) EventType() string {
	return TypeProviderPerformanceReported
}

// Event converts the payload into the broadcastable Event shape.
func (e ProviderPerformanceReported) Event() *Event {
	return build(TypeProviderPerformanceReported, map[string]string{
		"provider":    e.ProviderID,
		"kind":        e.Kind,
		"requests":    strconv.FormatUint(e.Requests, 10),
		"successRate": strconv.FormatUint(uint64(e.SuccessRate), 10),
		"latencyMs":   strconv.FormatUint(e.LatencyMs, 10),
	})
}
