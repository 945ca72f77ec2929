// Package common holds the error kinds shared by the store adapters, the
// services and the HTTP layer.
package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure independently of the backend that produced it.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindStoreUnavailable
	KindNotFound
	KindMalformedID
	KindDuplicateUsername
	KindDuplicateEmail
	KindInvalidCredentials
	KindUserNotFound
	KindInvalidPassword
	KindForbidden
	KindNoChanges
)

var kindNames = map[ErrorKind]string{
	KindUnknown:            "unknown",
	KindStoreUnavailable:   "store unavailable",
	KindNotFound:           "not found",
	KindMalformedID:        "malformed identifier",
	KindDuplicateUsername:  "username already exists",
	KindDuplicateEmail:     "email already registered",
	KindInvalidCredentials: "invalid credentials",
	KindUserNotFound:       "user not found",
	KindInvalidPassword:    "invalid password",
	KindForbidden:          "forbidden",
	KindNoChanges:          "nothing to update",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// implies reports whether an error of kind k should also match parent.
// A malformed id is a not-found for callers that do not care about the
// difference, and both login failures are invalid credentials.
func (k ErrorKind) implies(parent ErrorKind) bool {
	switch k {
	case KindMalformedID:
		return parent == KindNotFound
	case KindUserNotFound, KindInvalidPassword:
		return parent == KindInvalidCredentials
	}
	return false
}

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same (or an implied) kind, so the sentinels
// below work with errors.Is regardless of Op and Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind || e.Kind.implies(t.Kind)
}

var (
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrMalformedID        = &Error{Kind: KindMalformedID}
	ErrDuplicateUsername  = &Error{Kind: KindDuplicateUsername}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrUserNotFound       = &Error{Kind: KindUserNotFound}
	ErrInvalidPassword    = &Error{Kind: KindInvalidPassword}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrNoChanges          = &Error{Kind: KindNoChanges}
)

// E builds a classified error for op, optionally wrapping a cause.
func E(kind ErrorKind, op string, cause error) error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
