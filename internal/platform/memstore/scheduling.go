package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/incubyte/booking/internal/domain/scheduling"
)

// link fills the doctor and location of a row from its association.
// s.mu must be held.
func (s *Store) link(associationID int64) (doctorID, locationID int64, ok bool) {
	a, ok := s.associations[associationID]
	return a.DoctorID, a.LocationID, ok
}

// =========== Availability ===========

type availabilityRepo struct{ s *Store }

func (r availabilityRepo) Create(_ context.Context, a *scheduling.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, _, ok := r.s.link(a.AssociationID); !ok {
		return fmt.Errorf("insert availability: association %d does not exist", a.AssociationID)
	}
	r.s.nextAvailability++
	a.ID = r.s.nextAvailability
	r.s.availability[a.ID] = *a
	return nil
}

func (r availabilityRepo) GetByID(_ context.Context, id int64) (*scheduling.Availability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.availability[id]
	if !ok {
		return nil, scheduling.ErrAvailabilityNotFound
	}
	a.DoctorID, a.LocationID, _ = r.s.link(a.AssociationID)
	return &a, nil
}

func (r availabilityRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*scheduling.Availability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := []*scheduling.Availability{}
	for _, a := range r.s.availability {
		doc, loc, _ := r.s.link(a.AssociationID)
		if doc != doctorID {
			continue
		}
		a.DoctorID, a.LocationID = doc, loc
		items = append(items, &a)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StartTime != items[j].StartTime {
			return items[i].StartTime < items[j].StartTime
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r availabilityRepo) HasOverlap(_ context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.availability {
		if a.AssociationID == associationID && a.DayOfWeek == dayOfWeek &&
			scheduling.Overlaps(a.StartTime, a.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r availabilityRepo) HasCovering(_ context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.availability {
		if a.AssociationID == associationID && a.DayOfWeek == dayOfWeek &&
			scheduling.Covers(a.StartTime, a.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r availabilityRepo) DeleteForDoctor(_ context.Context, doctorID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.availability[id]
	if !ok {
		return scheduling.ErrAvailabilityNotFound
	}
	if doc, _, _ := r.s.link(a.AssociationID); doc != doctorID {
		return scheduling.ErrAvailabilityNotFound
	}
	delete(r.s.availability, id)
	return nil
}

// =========== Appointments ===========

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(_ context.Context, a *scheduling.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, _, ok := r.s.link(a.AssociationID); !ok {
		return fmt.Errorf("insert appointment: association %d does not exist", a.AssociationID)
	}
	r.s.nextAppointment++
	a.ID = r.s.nextAppointment
	r.s.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) GetByID(_ context.Context, id int64) (*scheduling.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	a.DoctorID, a.LocationID, _ = r.s.link(a.AssociationID)
	return &a, nil
}

func (r appointmentRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*scheduling.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := []*scheduling.Appointment{}
	for _, a := range r.s.appointments {
		doc, loc, _ := r.s.link(a.AssociationID)
		if doc != doctorID {
			continue
		}
		a.DoctorID, a.LocationID = doc, loc
		items = append(items, &a)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].StartTime != items[j].StartTime {
			return items[i].StartTime < items[j].StartTime
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r appointmentRepo) HasOverlap(_ context.Context, associationID int64, start, end string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.appointments {
		if a.AssociationID == associationID && scheduling.Overlaps(a.StartTime, a.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r appointmentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return scheduling.ErrAppointmentNotFound
	}
	delete(r.s.appointments, id)
	return nil
}
