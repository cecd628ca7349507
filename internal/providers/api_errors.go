package providers

import "errors"

// ErrUnauthorized marks an expired, invalid or missing session token.
// Callers clear the session and fall back to the public landing view.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError is a server-side rejection of the submitted input
// (unknown invite code, duplicate email, short password). The session and
// snapshot stay untouched and the user may correct and retry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransientError covers network failures and server 5xx responses. Nothing
// is cleared; the caller surfaces a retryable error.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
