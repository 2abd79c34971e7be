package models

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound      = errors.New("user not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("user is already an attendee")
	ErrNotRegistered     = errors.New("user is not an attendee")
	ErrCapacityExceeded  = errors.New("event has reached maximum capacity")

	ErrTicketNotFound    = errors.New("ticket not found")
	ErrEventMismatch     = errors.New("ticket is not valid for this event")
	ErrTicketAlreadyUsed = errors.New("ticket has already been used")
	ErrTicketExpired     = errors.New("ticket has expired")

	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrItemNotFound         = errors.New("lost item not found")
	ErrItemAlreadyClaimed   = errors.New("lost item has already been claimed")
	ErrParkingFull          = errors.New("no parking slots available")
	ErrAlreadyBooked        = errors.New("user already has an active booking")
	ErrBookingNotFound      = errors.New("parking booking not found")
	ErrEmergencyNotFound    = errors.New("emergency not found")
	ErrEmergencyResolved    = errors.New("emergency is already resolved")

	ErrStoreUnavailable = errors.New("store unavailable")
)
