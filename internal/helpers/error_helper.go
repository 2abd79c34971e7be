package helpers

import (
	"errors"
	"net/http"

	"github.com/eventease/eventease/internal/models"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithDomainError maps a domain error to its HTTP status. Raw store
// errors never reach clients: anything unmapped becomes a 500.
func RespondWithDomainError(c *gin.Context, err error) {
	RespondWithError(c, StatusForError(err), MessageForError(err))
}

func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrAnnouncementNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrEmergencyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateAccount),
		errors.Is(err, models.ErrAlreadyRegistered),
		errors.Is(err, models.ErrNotRegistered),
		errors.Is(err, models.ErrCapacityExceeded),
		errors.Is(err, models.ErrTicketAlreadyUsed),
		errors.Is(err, models.ErrEventMismatch),
		errors.Is(err, models.ErrItemAlreadyClaimed),
		errors.Is(err, models.ErrParkingFull),
		errors.Is(err, models.ErrAlreadyBooked),
		errors.Is(err, models.ErrEmergencyResolved):
		return http.StatusConflict
	case errors.Is(err, models.ErrTicketExpired):
		return http.StatusGone
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func MessageForError(err error) string {
	if StatusForError(err) == http.StatusInternalServerError {
		return "Something went wrong."
	}
	return err.Error()
}
