package events

const (
	// TypeChainIDAdded is emitted when root adds a chain identifier to the
	// accepted set.
	TypeChainIDAdded = "access.chainIdAdded"
	// TypeChainIDRemoved is emitted when root removes a chain identifier
	// from the accepted set.
	TypeChainIDRemoved = "access.chainIdRemoved"
	// TypeFishermanAdded is emitted when root grants an account the
	// fisherman role.
	TypeFishermanAdded = "access.fishermanAdded"
	// TypeFishermanRemoved is emitted when root revokes an account's
	// fisherman role.
	TypeFishermanRemoved = "access.fishermanRemoved"
)

// ChainIDAdded captures a successful add_chain_id call.
type ChainIDAdded struct {
	ChainID string
}

// EventType implements Typed.
func (ChainIDAdded) EventType() string { return TypeChainIDAdded }

// Event converts the payload into the broadcastable Event shape.
func (e ChainIDAdded) Event() *Event {
	return build(TypeChainIDAdded, map[string]string{
		"chainId": e.ChainID,
	})
}

// ChainIDRemoved captures a successful remove_chain_id call.
type ChainIDRemoved struct {
	ChainID string
}

// EventType implements Typed.
func (ChainIDRemoved) EventType() string { return TypeChainIDRemoved }

// Event converts the payload into the broadcastable Event shape.
func (e ChainIDRemoved) Event() *Event {
	return build(TypeChainIDRemoved, map[string]string{
		"chainId": e.ChainID,
	})
}

// FishermanAdded captures a successful add_fisherman call.
type FishermanAdded struct {
	Account string
}

// EventType implements Typed.
func (FishermanAdded) EventType() string { return TypeFishermanAdded }

// Event converts the payload into the broadcastable Event shape.
func (e FishermanAdded) Event() *Event {
	return build(TypeFishermanAdded, map[string]string{
		"account": e.Account,
	})
}

// FishermanRemoved captures a successful remove_fisherman call.
type FishermanRemoved struct {
	Account string
}

// EventType implements Typed.
func (FishermanRemoved) EventType() string { return TypeFishermanRemoved }

// Event converts the payload into the broadcastable Event shape.
func (e FishermanRemoved) Event() *Event {
	return build(TypeFishermanRemoved, map[string]string{
		"account": e.Account,
	})
}
