package errs

import "errors"

// Engine-wide sentinel errors shared by the command and query layers.
var (
	// Lookup errors
	ErrProviderNotFound    = errors.New("provider not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrExceptionNotFound   = errors.New("schedule exception not found")

	// Booking errors
	ErrValidation        = errors.New("validation error")
	ErrSchedulingWindow  = errors.New("requested time outside bookable window")
	ErrBookingConflict   = errors.New("time slot no longer available")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
