package scheduling

import (
	"context"
	"errors"

	"github.com/incubyte/booking/internal/platform/apperr"
	"github.com/incubyte/booking/internal/platform/db"
)

// AssociationLookup resolves a doctor/location pair to its association id.
// A missing pair is reported as a not-found error.
type AssociationLookup interface {
	LookupAssociation(ctx context.Context, doctorID, locationID int64) (int64, error)
}

// BookingObserver is notified of the outcome of every validated write.
type BookingObserver interface {
	ObserveBooking(resource, outcome string)
}

const (
	resourceAvailability = "availability"
	resourceAppointment  = "appointment"
)

type Service struct {
	assoc        AssociationLookup
	availability AvailabilityRepository
	appointments AppointmentRepository
	tx           db.TxRunner
	observer     BookingObserver
}

func NewService(assoc AssociationLookup, avail AvailabilityRepository, appt AppointmentRepository, tx db.TxRunner) *Service {
	return &Service{assoc: assoc, availability: avail, appointments: appt, tx: tx}
}

// WithObserver sets the observer that receives booking outcomes.
func (s *Service) WithObserver(o BookingObserver) *Service {
	s.observer = o
	return s
}

// resolve maps a missing association to the caller's error.
func (s *Service) resolve(ctx context.Context, doctorID, locationID int64, missing error) (int64, error) {
	id, err := s.assoc.LookupAssociation(ctx, doctorID, locationID)
	if apperr.IsNotFound(err) {
		return 0, missing
	}
	return id, err
}

// -- Availability --

// AddAvailability records a new availability slot. The slot must belong to an
// existing doctor/location association and may not overlap another slot of
// that association on the same day.
func (s *Service) AddAvailability(ctx context.Context, req BookingRequest) (int64, error) {
	w, err := req.window()
	if err != nil {
		s.observe(resourceAvailability, err)
		return 0, err
	}

	a := &Availability{
		DoctorID:   req.DoctorID,
		LocationID: req.LocationID,
		StartTime:  w.start,
		EndTime:    w.end,
		DayOfWeek:  w.day,
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		assocID, err := s.resolve(ctx, req.DoctorID, req.LocationID, ErrNotAssociated)
		if err != nil {
			return err
		}
		overlap, err := s.availability.HasOverlap(ctx, assocID, w.day, w.start, w.end)
		if err != nil {
			return err
		}
		if overlap {
			return ErrAlreadyAvailable
		}
		a.AssociationID = assocID
		return s.availability.Create(ctx, a)
	})
	s.observe(resourceAvailability, err)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *Service) GetAvailability(ctx context.Context, id int64) (*Availability, error) {
	return s.availability.GetByID(ctx, id)
}

// ListAvailability returns the slots of every association of the doctor.
func (s *Service) ListAvailability(ctx context.Context, doctorID int64) ([]*Availability, error) {
	return s.availability.ListByDoctor(ctx, doctorID)
}

func (s *Service) DeleteAvailability(ctx context.Context, doctorID, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.availability.DeleteForDoctor(ctx, doctorID, id)
	})
}

// -- Appointment --

// CreateAppointment books an appointment. The interval must fall entirely
// within one availability slot of the association on the same day and must
// not overlap any appointment already booked on the association.
func (s *Service) CreateAppointment(ctx context.Context, req BookingRequest) (int64, error) {
	w, err := req.window()
	if err != nil {
		s.observe(resourceAppointment, err)
		return 0, err
	}

	a := &Appointment{
		DoctorID:   req.DoctorID,
		LocationID: req.LocationID,
		StartTime:  w.start,
		EndTime:    w.end,
		DayOfWeek:  w.day,
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		assocID, err := s.resolve(ctx, req.DoctorID, req.LocationID, ErrInvalidAssociation)
		if err != nil {
			return err
		}
		covered, err := s.availability.HasCovering(ctx, assocID, w.day, w.start, w.end)
		if err != nil {
			return err
		}
		if !covered {
			return ErrNoAvailability
		}
		taken, err := s.appointments.HasOverlap(ctx, assocID, w.start, w.end)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		a.AssociationID = assocID
		return s.appointments.Create(ctx, a)
	})
	s.observe(resourceAppointment, err)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	return s.appointments.ListByDoctor(ctx, doctorID)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.appointments.Delete(ctx, id)
	})
}

func (s *Service) observe(resource string, err error) {
	if s.observer != nil {
		s.observer.ObserveBooking(resource, Outcome(err))
	}
}

// Outcome labels the result of a validated write for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrNotAssociated), errors.Is(err, ErrInvalidAssociation):
		return "invalid_reference"
	case errors.Is(err, ErrAlreadyAvailable):
		return "overlap"
	case errors.Is(err, ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, db.ErrConcurrentWrite):
		return "conflict"
	case apperr.IsInvalid(err):
		return "invalid"
	default:
		return "error"
	}
}
