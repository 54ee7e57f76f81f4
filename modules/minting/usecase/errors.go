package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
)

var (
	ErrNotInitialized     = errors.Wrap(errs.PreconditionFailed, "configuration is not initialized")
	ErrAlreadyInitialized = errors.Wrap(errs.Conflict, "configuration is already initialized")
	ErrInvalidMintIndex   = errors.Wrap(errs.Conflict, "invalid mint index, must be mint sequence + 1")
	ErrDuplicateRecord    = errors.Wrap(errs.Conflict, "mint record already exists")
	ErrDelegationFailed   = errors.Wrap(errs.DependencyFailed, "token ledger delegation failed")
	ErrInvalidAmount      = errors.Wrap(errs.InvalidArgument, "amount must be greater than zero")
	ErrInvalidCaller      = errors.Wrap(errs.InvalidArgument, "caller is required")
	ErrMintAlreadyExists  = errors.Wrap(errs.Conflict, "token mint already exists")
	ErrDeploymentMismatch = errors.Wrap(errs.PreconditionFailed, "database belongs to another deployment")
)

// InvalidMintIndexError is returned with ErrInvalidMintIndex and carries the only index that would have been accepted.
type InvalidMintIndexError struct {
	Expected uint64
	Claimed  uint64
}

func (e *InvalidMintIndexError) Error() string {
	return fmt.Sprintf("invalid mint index %d, expected %d", e.Claimed, e.Expected)
}

func (e *InvalidMintIndexError) Unwrap() error {
	return ErrInvalidMintIndex
}
