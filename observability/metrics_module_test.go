package observability

import (
	"errors"
	"testing"
	"time"
)

func Test_ModuleMetrics_ObserveDoesNotPanic(t *testing.T) {
	m := ModuleMetrics()
	m.Observe("bond_and_stake", nil, 5*time.Millisecond)
	m.Observe("bond_and_stake", errors.New("boom"), time.Millisecond)
	m.RecordThrottle("submit_project_usage", "fisherman_rate_limit")
}

func Test_StakingMetrics_RecordersDoNotPanic(t *testing.T) {
	s := Staking()
	s.RecordEraAdvance(7)
	s.RecordRewardMinted(1000)
	s.RecordClaim("operator", 800)
	s.RecordClaim("staker", 200)
	s.SetTotalStaked(5000)
	s.SetUnbondingTotal(250)
}

func Test_RegistryMetrics_RecordersDoNotPanic(t *testing.T) {
	r := Registry()
	r.SetProvidersRegistered(3)
	r.SetProjectsRegistered(2)
	r.RecordUsage("chain-a", 60, false)
	r.RecordUsage("chain-a", 40, true)
	r.RecordProviderReport("forced_exit")
}

func Test_ModuleMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *moduleMetrics
	m.Observe("noop", nil, 0)
	m.RecordThrottle("noop", "reason")
}
