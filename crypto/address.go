// Package crypto provides the bech32 account-address encoding shared by the
// staking engine and its callers, plus deterministic derivation of module
// accounts (the staking pool account).
//
// Signature verification and transaction-origin checking are a runtime
// collaborator's responsibility and are intentionally absent here: by
// the time a call reaches this package the caller has already been
// authenticated.
package crypto

import (
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	"lukechampine.com/blake3"
)

// AddressPrefix distinguishes the human-readable namespace an address was
// minted under.
type AddressPrefix string

const (
	// AccountPrefix marks ordinary staker/operator/consumer accounts.
	AccountPrefix AddressPrefix = "api"
	// ModulePrefix marks deterministically derived module accounts, such as
	// the staking pool account.
	ModulePrefix AddressPrefix = "apimod"
)

// Address is a 20-byte account identifier with a human-readable prefix.
type Address struct {
	prefix AddressPrefix
	bytes  [20]byte
}

// NewAddress builds an Address from exactly 20 raw bytes.
func NewAddress(prefix AddressPrefix, b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, fmt.Errorf("crypto: address must be 20 bytes, got %d", len(b))
	}
	var addr Address
	addr.prefix = prefix
	copy(addr.bytes[:], b)
	return addr, nil
}

// MustNewAddress builds an Address and panics on malformed input. Reserved
// for compile-time-known constants (module account derivation, tests).
func MustNewAddress(prefix AddressPrefix, b []byte) Address {
	addr, err := NewAddress(prefix, b)
	if err != nil {
		panic(err)
	}
	return addr
}

// String renders the bech32 encoding of the address.
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a.bytes[:], 8, 5, true)
	if err != nil {
		panic(err)
	}
	encoded, err := bech32.Encode(string(a.prefix), conv)
	if err != nil {
		panic(err)
	}
	return encoded
}

// Bytes returns a copy of the raw 20-byte address.
func (a Address) Bytes() []byte {
	out := make([]byte, 20)
	copy(out, a.bytes[:])
	return out
}

// Prefix reports the address's human-readable namespace.
func (a Address) Prefix() AddressPrefix { return a.prefix }

// IsZero reports whether the address has never been assigned bytes.
func (a Address) IsZero() bool { return a.bytes == [20]byte{} }

// Equal reports whether two addresses hold the same bytes (prefix ignored,
// since the same underlying account may be rendered under either prefix).
func (a Address) Equal(other Address) bool { return a.bytes == other.bytes }

// DecodeAddress parses a bech32-encoded address string.
func DecodeAddress(addrStr string) (Address, error) {
	prefix, decoded, err := bech32.Decode(addrStr)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: invalid bech32 address: %w", err)
	}
	conv, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: error converting bech32 bits: %w", err)
	}
	return NewAddress(AddressPrefix(prefix), conv)
}

// DeriveModuleAddress computes the deterministic account associated with a
// module identifier (e.g. the staking pool account). The derivation hashes
// the identifier with blake3 and truncates to 20 bytes, giving every
// deployment of this engine the same pool account for the same identifier
// without needing a keypair.
func DeriveModuleAddress(moduleID string) Address {
	sum := blake3.Sum256([]byte("apistake/module/" + moduleID))
	return MustNewAddress(ModulePrefix, sum[:20])
}
