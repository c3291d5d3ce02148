package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/validation"
)

// ErrSessionArchived is returned when an archived session's expenses would change.
var ErrSessionArchived = errors.New("session is archived")

// connectError maps a service or storage error onto a Connect status code.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case validation.IsValidationError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrSessionArchived):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
