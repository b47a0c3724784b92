// Package memstore keeps every booking table in process memory. It backs the
// default "memory" store driver and loses its contents on restart.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/incubyte/booking/internal/domain/practice"
	"github.com/incubyte/booking/internal/domain/scheduling"
)

type txKey struct{}

// Store holds the tables shared by all repositories it hands out.
type Store struct {
	// txSem admits one InTx caller at a time; mu guards the maps for single
	// operations.
	txSem chan struct{}
	mu    sync.RWMutex

	doctors      map[int64]practice.Doctor
	locations    map[int64]practice.Location
	associations map[int64]practice.Association
	availability map[int64]scheduling.Availability
	appointments map[int64]scheduling.Appointment

	nextDoctor, nextLocation, nextAssociation, nextAvailability, nextAppointment int64
}

func New() *Store {
	return &Store{
		txSem:        make(chan struct{}, 1),
		doctors:      make(map[int64]practice.Doctor),
		locations:    make(map[int64]practice.Location),
		associations: make(map[int64]practice.Association),
		availability: make(map[int64]scheduling.Availability),
		appointments: make(map[int64]scheduling.Appointment),
	}
}

// InTx runs fn while holding the store-wide transaction lock. Nested calls
// run inline. A caller still waiting for the lock when ctx ends gets
// ctx.Err(). There is no rollback: callers validate before they write.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	select {
	case s.txSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.txSem }()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Doctors() practice.DoctorRepository { return doctorRepo{s} }

func (s *Store) Locations() practice.LocationRepository { return locationRepo{s} }

func (s *Store) Associations() practice.AssociationRepository { return associationRepo{s} }

func (s *Store) Availability() scheduling.AvailabilityRepository { return availabilityRepo{s} }

func (s *Store) Appointments() scheduling.AppointmentRepository { return appointmentRepo{s} }

// deleteAssociationLocked removes an association and everything booked
// against it. s.mu must be held for writing.
func (s *Store) deleteAssociationLocked(id int64) {
	delete(s.associations, id)
	for k, a := range s.availability {
		if a.AssociationID == id {
			delete(s.availability, k)
		}
	}
	for k, a := range s.appointments {
		if a.AssociationID == id {
			delete(s.appointments, k)
		}
	}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
