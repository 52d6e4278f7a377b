// Package errors defines the typed sentinel error taxonomy surfaced by the
// staking engine. Every extrinsic failure is one of these sentinels so
// callers can use errors.Is instead of string matching.
package errors

import stderrors "errors"

// Validation errors.
var (
	ErrBadChainId       = stderrors.New("apistake: chain id not recognised")
	ErrAlreadyExist     = stderrors.New("apistake: entry already exists")
	ErrNotExist         = stderrors.New("apistake: entry does not exist")
	ErrNotOwner         = stderrors.New("apistake: caller is not the owner")
	ErrPermissionDenied = stderrors.New("apistake: permission denied")
)

// State errors.
var (
	ErrNotOperatedProvider     = stderrors.New("apistake: provider is not operated")
	ErrAlreadyClaimedThisEra   = stderrors.New("apistake: era already claimed")
	ErrEraOutOfBounds          = stderrors.New("apistake: era out of bounds")
	ErrUnknownEraReward        = stderrors.New("apistake: unknown era reward")
	ErrNotStaked               = stderrors.New("apistake: account has no stake on provider")
)

// Arithmetic / limit errors.
var (
	ErrStakingWithNoValue     = stderrors.New("apistake: staking with no value")
	ErrUnstakingWithNoValue   = stderrors.New("apistake: unstaking with no value")
	ErrInsufficientValue      = stderrors.New("apistake: insufficient value")
	ErrMaxStakersExceeded     = stderrors.New("apistake: maximum stakers per provider exceeded")
	ErrTooManyEraStakeValues  = stderrors.New("apistake: too many era stake values")
	ErrTooManyUnlockingChunks = stderrors.New("apistake: too many unlocking chunks")
	ErrNothingToWithdraw      = stderrors.New("apistake: nothing to withdraw")
	ErrOverflow               = stderrors.New("apistake: arithmetic overflow")
)

// Deposit errors.
var (
	ErrInsufficientBonding  = stderrors.New("apistake: deposit below minimum bonding requirement")
	ErrTooManyDepositChunks = stderrors.New("apistake: too many deposit chunks")
)

// Reporting errors. These sit outside the fixed §7 taxonomy: they guard
// the fisherman-report rate limit, a supplemented ambient concern
// rather than a core extrinsic failure mode.
var (
	ErrNotFisherman          = stderrors.New("apistake: caller is not a fisherman")
	ErrFishermanRateLimited  = stderrors.New("apistake: fisherman report rate limit exceeded")
)
