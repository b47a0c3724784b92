package scheduling

import (
	"context"
	"errors"
)

// Demo availability: Mondays 09:00-17:00. 2025-01-06 is a Monday.
var demoAvailability = BookingRequest{
	StartTime: "2025-01-06T09:00:00",
	EndTime:   "2025-01-06T17:00:00",
	DayOfWeek: "Monday",
}

// Seed adds the demo availability slot for the given doctor and location.
// An existing overlapping slot is left in place.
func Seed(ctx context.Context, svc *Service, doctorID, locationID int64) error {
	req := demoAvailability
	req.DoctorID = doctorID
	req.LocationID = locationID

	_, err := svc.AddAvailability(ctx, req)
	if errors.Is(err, ErrAlreadyAvailable) {
		return nil
	}
	return err
}
