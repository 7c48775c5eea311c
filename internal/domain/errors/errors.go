package errors

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialCountMismatch = errors.New("credential count mismatch")
	ErrNoAccounts              = errors.New("no accounts configured")
	ErrUnauthorized            = errors.New("credential rejected")
	ErrMalformedResponse       = errors.New("malformed response")
	ErrBonusNotSupported       = errors.New("bonus kind not supported")
	ErrBonusNotFound           = errors.New("bonus not offered")
	ErrRunInProgress           = errors.New("run already in progress")
	ErrNotFound                = errors.New("not found")
)

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
