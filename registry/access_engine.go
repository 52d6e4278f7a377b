package registry

import (
	apierrors "apistake/core/errors"
	"apistake/core/events"
)

// AccessEngine implements the root-gated chain-id and fisherman sets
// (C9). Root-gating itself is the caller's responsibility: neither
// this engine nor runtime.Engine checks the origin, matching how
// Substrate pallets separate origin checks from pallet logic.
type AccessEngine struct {
	access  *AccessStore
	cfg     Config
	emitter events.Emitter
}

// NewAccessEngine wires an AccessEngine from its collaborators.
func NewAccessEngine(cfg Config, access *AccessStore, emitter events.Emitter) *AccessEngine {
	return &AccessEngine{cfg: cfg, access: access, emitter: emitter}
}

func (e *AccessEngine) emit(t events.Typed) {
	if e.emitter != nil {
		e.emitter.Emit(t.Event())
	}
}

// AddChainID adds chainID to the accepted set. Fails ErrAlreadyExist
// if already present, or ErrBadChainId if it exceeds ChainIDMaxLen.
func (e *AccessEngine) AddChainID(chainID string) error {
	if len(chainID) > e.cfg.ChainIDMaxLen {
		return apierrors.ErrBadChainId
	}
	ok, err := e.access.HasChainID(chainID)
	if err != nil {
		return err
	}
	if ok {
		return apierrors.ErrAlreadyExist
	}
	if err := e.access.AddChainID(chainID); err != nil {
		return err
	}
	e.emit(events.ChainIDAdded{ChainID: chainID})
	return nil
}

// RemoveChainID removes chainID from the accepted set. Fails
// ErrNotExist if absent.
func (e *AccessEngine) RemoveChainID(chainID string) error {
	ok, err := e.access.HasChainID(chainID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if err := e.access.RemoveChainID(chainID); err != nil {
		return err
	}
	e.emit(events.ChainIDRemoved{ChainID: chainID})
	return nil
}

// AddFisherman grants account the fisherman role. Fails
// ErrAlreadyExist if already granted.
func (e *AccessEngine) AddFisherman(account string) error {
	ok, err := e.access.IsFisherman(account)
	if err != nil {
		return err
	}
	if ok {
		return apierrors.ErrAlreadyExist
	}
	if err := e.access.AddFisherman(account); err != nil {
		return err
	}
	e.emit(events.FishermanAdded{Account: account})
	return nil
}

// RemoveFisherman revokes account's fisherman role. Fails ErrNotExist
// if not currently granted.
func (e *AccessEngine) RemoveFisherman(account string) error {
	ok, err := e.access.IsFisherman(account)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if err := e.access.RemoveFisherman(account); err != nil {
		return err
	}
	e.emit(events.FishermanRemoved{Account: account})
	return nil
}
