package service

import "errors"

// ErrAuth matches, through errors.Is, every error caused by missing,
// invalid or rejected credentials.
var ErrAuth = errors.New("auth error")

// AuthError marks Err as a credentials problem. Its message is Err's.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

// Is reports whether target is ErrAuth.
func (e *AuthError) Is(target error) bool { return target == ErrAuth }
