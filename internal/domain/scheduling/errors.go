package scheduling

import (
	"github.com/incubyte/booking/internal/platform/apperr"
)

var (
	ErrAvailabilityNotFound = apperr.NotFound("availability not found")
	ErrAppointmentNotFound  = apperr.NotFound("appointment not found")

	ErrNotAssociated      = apperr.Invalid("Doctor is not associated with the selected location.")
	ErrAlreadyAvailable   = apperr.Invalid("Doctor is already available for that time slot")
	ErrInvalidAssociation = apperr.Invalid("Invalid doctor or location association.")
	ErrNoAvailability     = apperr.Invalid("No matching availability.")
	ErrSlotTaken          = apperr.Invalid("Time slot already booked.")

	ErrEmptyInterval     = apperr.Invalid("end_time must be after start_time")
	ErrDayOfWeekRequired = apperr.Invalid("day_of_week is required")
)
