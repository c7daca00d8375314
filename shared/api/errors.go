// shared/api/errors.go
package api

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies the failures a handler knows how to turn into a client-facing response.
type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindNotFound
	KindAlreadyExists
)

// Error is a typed API failure. Stores and validators return it; handlers only look at Kind
// to pick a status and forward Title and Detail untouched.
type Error struct {
	Kind   ErrorKind
	Title  string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status(), e.Title, e.Detail)
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is lets errors.Is(err, ErrNotFound) and friends match typed errors by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindAlreadyExists
	}
	return false
}

// NewBadRequest builds a 400 error with the standard title.
func NewBadRequest(detail string) *Error {
	return &Error{Kind: KindBadRequest, Title: "Bad Request", Detail: detail}
}

// NewNotFound builds a 404 error for an entity type and name, e.g. "Player Not Found".
func NewNotFound(entity, name string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Title:  fmt.Sprintf("%s Not Found", entity),
		Detail: fmt.Sprintf("No %s '%s' found.", entity, name),
	}
}

// NewAlreadyExists builds a 409 error for a colliding entity name.
func NewAlreadyExists(entity, name string) *Error {
	return &Error{
		Kind:   KindAlreadyExists,
		Title:  fmt.Sprintf("%s Already Exists", entity),
		Detail: fmt.Sprintf("There is already a %s with name '%s'.", entity, name),
	}
}
