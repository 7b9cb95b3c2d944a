package model

import "errors"

// Policy rejections returned by the participation engine. These are expected
// outcomes the HTTP layer translates into user-facing responses; storage
// failures are returned as-is and treated as infrastructure errors.
var (
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrEventFull          = errors.New("event has no free slots")
	ErrAlreadyRegistered  = errors.New("user already has a participation for this event")
	ErrNotRegistered      = errors.New("no active participation for this user and event")
	ErrEventNotFound      = errors.New("event not found")
	ErrUserNotFound       = errors.New("user not found")
)
