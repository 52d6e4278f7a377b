package events

const (
	// TypeStake is emitted whenever a staker bonds balance onto a provider.
	TypeStake = "stake.bonded"
	// TypeUnstake is emitted when a staker schedules a portion of their
	// stake for unbonding.
	TypeUnstake = "stake.unbonded"
	// TypeWithdrawn is emitted when matured unbonding chunks are released
	// back to an account's free balance.
	TypeWithdrawn = "stake.withdrawn"
	// TypeReward is emitted for every payout leg of a claim — once for the
	// operator cut and once per rewarded staker.
	TypeReward = "stake.reward"
)

// Stake captures a successful bond_and_stake call.
type Stake struct {
	Staker     string
	ProviderID string
	Amount     uint64
}

// EventType implements Typed.
func (Stake) EventType() string { return TypeStake }

// Event converts the payload into the broadcastable Event shape.
func (e Stake) Event() *Event {
	return build(TypeStake, map[string]string{
		"staker":   e.Staker,
		"provider": e.ProviderID,
		"amount":   formatBalance(e.Amount),
	})
}

// Unstake captures a successful unstake call.
type Unstake struct {
	Staker     string
	ProviderID string
	Amount     uint64
}

// EventType implements Typed.
func (Unstake) EventType() string { return TypeUnstake }

// Event converts the payload into the broadcastable Event shape.
func (e Unstake) Event() *Event {
	return build(TypeUnstake, map[string]string{
		"staker":   e.Staker,
		"provider": e.ProviderID,
		"amount":   formatBalance(e.Amount),
	})
}

// Withdrawn captures a successful withdraw_unbonded call.
type Withdrawn struct {
	Staker string
	Amount uint64
}

// EventType implements Typed.
func (Withdrawn) EventType() string { return TypeWithdrawn }

// Event converts the payload into the broadcastable Event shape.
func (e Withdrawn) Event() *Event {
	return build(TypeWithdrawn, map[string]string{
		"staker": e.Staker,
		"amount": formatBalance(e.Amount),
	})
}

// Reward captures one payout leg of a claim — the operator cut or one
// staker's share.
type Reward struct {
	Account    string
	ProviderID string
	Era        uint64
	Amount     uint64
}

// EventType implements Typed.
func (Reward) EventType() string { return TypeReward }

// Event converts the payload into the broadcastable Event shape.
func (e Reward) Event() *Event {
	return build(TypeReward, map[string]string{
		"account":  e.Account,
		"provider": e.ProviderID,
		"era":      formatEra(e.Era),
		"amount":   formatBalance(e.Amount),
	})
}
