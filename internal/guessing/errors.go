package guessing

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPropertyNotFound means the submitted property ID does not resolve.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnauthorized means no resolved identity accompanied the submission.
	ErrUnauthorized = errors.New("authenticated identity required")

	// ErrInvalidPrice means the guessed price is not a positive amount.
	ErrInvalidPrice = errors.New("guessed price must be positive")

	// ErrCooldownActive is the errors.Is target for CooldownError.
	ErrCooldownActive = errors.New("guess update cooldown active")
)

// CooldownError rejects an edit attempted before the cooldown elapses.
// Until is surfaced so callers can show a countdown instead of a bare
// rejection.
type CooldownError struct {
	Until time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("guess can be updated after %s", e.Until.Format(time.RFC3339))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
