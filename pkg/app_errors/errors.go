package apperrors

import "errors"

var (
	ErrShowNotFound           = errors.New("show not found")
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrSeatOutOfRange         = errors.New("seat number out of range")
	ErrSeatAlreadyBooked      = errors.New("seat already booked")
	ErrDuplicateSeatInRequest = errors.New("duplicate seat in request")
	ErrTicketAlreadyCancelled = errors.New("ticket already cancelled")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternalServerError    = errors.New("internal server error")
)
