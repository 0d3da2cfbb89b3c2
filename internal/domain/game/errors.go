package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyClaimed     = errors.New("already claimed")
	ErrSelfBattle         = errors.New("cannot battle yourself")
	ErrNoOpponent         = errors.New("no opponent given")
	ErrOnCooldown         = errors.New("on cooldown")
	ErrOpponentBusy       = errors.New("opponent is busy")
	ErrNoCombatPower      = errors.New("no combat power")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CooldownError reports how long the caller still has to wait.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s on cooldown for %s", e.Action, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrOnCooldown
}

// NewCooldownError builds a CooldownError for a window of which elapsed has passed.
func NewCooldownError(action string, window time.Duration, elapsed time.Duration) *CooldownError {
	return &CooldownError{Action: action, Remaining: window - elapsed}
}

// RemainingCooldown extracts the wait time from err, if it carries one.
func RemainingCooldown(err error) (time.Duration, bool) {
	var cd *CooldownError
	if errors.As(err, &cd) {
		return cd.Remaining, true
	}
	return 0, false
}

func InsufficientFunds(has, needs int64) error {
	return fmt.Errorf("%w (has %d, needs %d)", ErrInsufficientFunds, has, needs)
}

func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// IsDomainError reports whether err is an expected game outcome rather than
// a storage or programming fault.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInsufficientFunds, ErrAlreadyClaimed, ErrSelfBattle,
		ErrNoOpponent, ErrOnCooldown, ErrOpponentBusy, ErrNoCombatPower,
		ErrInvalidInput, ErrPermissionDenied,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
