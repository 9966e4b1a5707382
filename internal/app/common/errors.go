package common

import "errors"

// Typed errors carrying the user-facing message. Handlers translate them to
// the HTTP status taxonomy; anything else becomes a 500.

type NotFoundError struct{ Msg string }

func (e NotFoundError) Error() string { return e.Msg }

func NewNotFound(msg string) error { return NotFoundError{Msg: msg} }

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

type ValidationError struct{ Msg string }

func (e ValidationError) Error() string { return e.Msg }

func NewValidation(msg string) error { return ValidationError{Msg: msg} }

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

type ConflictError struct{ Msg string }

func (e ConflictError) Error() string { return e.Msg }

func NewConflict(msg string) error { return ConflictError{Msg: msg} }

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

type UnauthorizedError struct{ Msg string }

func (e UnauthorizedError) Error() string { return e.Msg }

func NewUnauthorized(msg string) error { return UnauthorizedError{Msg: msg} }

func IsUnauthorized(err error) bool {
	var ue UnauthorizedError
	return errors.As(err, &ue)
}

type ForbiddenError struct{ Msg string }

func (e ForbiddenError) Error() string { return e.Msg }

func NewForbidden(msg string) error { return ForbiddenError{Msg: msg} }

func IsForbidden(err error) bool {
	var fe ForbiddenError
	return errors.As(err, &fe)
}
