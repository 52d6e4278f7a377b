package events

import "strconv"

const (
	// TypeProjectRegistered is emitted when a new consumer project is created.
	TypeProjectRegistered = "project.registered"
	// TypeProjectDeposited is emitted when a project's deposit (and
	// therefore quota) increases.
	TypeProjectDeposited = "project.deposited"
	// TypeProjectUsageReported is emitted when a fisherman-submitted usage
	// report is applied below quota.
	TypeProjectUsageReported = "project.usageReported"
	// TypeProjectReachedQuota is emitted the moment a project's usage
	// clamps at its quota.
	TypeProjectReachedQuota = "project.reachedQuota"
)

// ProjectRegistered captures a successful register_project call.
type ProjectRegistered struct {
	ProjectID string
	Consumer  string
	ChainID   string
	Quota     uint64
	Deposit   uint64
}

// EventType implements Typed.
func (ProjectRegistered) EventType() string { return TypeProjectRegistered }

// Event converts the payload into the broadcastable Event shape.
func (e ProjectRegistered) Event() *Event {
	return build(TypeProjectRegistered, map[string]string{
		"project":  e.ProjectID,
		"consumer": e.Consumer,
		"chainId":  e.ChainID,
		"quota":    formatBalance(e.Quota),
		"deposit":  formatBalance(e.Deposit),
	})
}

// ProjectDeposited captures a successful deposit_project call.
type ProjectDeposited struct {
	ProjectID string
	Amount    uint64
	NewQuota  uint64
}

// EventType implements Typed.
func (ProjectDeposited) EventType() string { return TypeProjectDeposited }

// Event converts the payload into the broadcastable Event shape.
func (e ProjectDeposited) Event() *Event {
	return build(TypeProjectDeposited, map[string]string{
		"project":  e.ProjectID,
		"amount":   formatBalance(e.Amount),
		"newQuota": formatBalance(e.NewQuota),
	})
}

// ProjectUsageReported captures a usage report that did not reach quota.
type ProjectUsageReported struct {
	ProjectID string
	Usage     uint64
	Quota     uint64
}

// EventType implements Typed.
func (ProjectUsageReported) EventType() string { return TypeProjectUsageReported }

// Event converts the payload into the broadcastable Event shape.
func (e ProjectUsageReported) Event() *Event {
	return build(TypeProjectUsageReported, map[string]string{
		"project": e.ProjectID,
		"usage":   strconv.FormatUint(e.Usage, 10),
		"quota":   strconv.FormatUint(e.Quota, 10),
	})
}

// ProjectReachedQuota captures a usage report that clamped at quota.
type ProjectReachedQuota struct {
	ProjectID string
	Quota     uint64
}

// EventType implements Typed.
func (ProjectReachedQuota) EventType() string { return TypeProjectReachedQuota }

// Event converts the payload into the broadcastable Event shape.
func (e ProjectReachedQuota) Event() *Event {
	return build(TypeProjectReachedQuota, map[string]string{
		"project": e.ProjectID,
		"quota":   strconv.FormatUint(e.Quota, 10),
	})
}
