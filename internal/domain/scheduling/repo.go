package scheduling

import (
	"context"
)

// AvailabilityRepository persists availability slots. Interval arguments are
// wall-clock strings in WallClockLayout.
type AvailabilityRepository interface {
	Create(ctx context.Context, a *Availability) error
	GetByID(ctx context.Context, id int64) (*Availability, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Availability, error)
	// HasOverlap reports whether a slot of the association on dayOfWeek
	// overlaps [start, end).
	HasOverlap(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error)
	// HasCovering reports whether a slot of the association on dayOfWeek
	// fully contains [start, end).
	HasCovering(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error)
	// DeleteForDoctor removes the slot only if it belongs to one of the
	// doctor's associations; otherwise it returns ErrAvailabilityNotFound.
	DeleteForDoctor(ctx context.Context, doctorID, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error)
	HasOverlap(ctx context.Context, associationID int64, start, end string) (bool, error)
	Delete(ctx context.Context, id int64) error
}
