package memstore

import (
	"context"

	"github.com/incubyte/booking/internal/domain/practice"
	"github.com/incubyte/booking/internal/platform/apperr"
)

// =========== Doctors ===========

type doctorRepo struct{ s *Store }

func (r doctorRepo) Create(_ context.Context, d *practice.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.doctors {
		if existing.FirstName == d.FirstName && existing.LastName == d.LastName {
			return apperr.Invalidf("Doctor: %s %s already exists in the database", d.FirstName, d.LastName)
		}
	}
	r.s.nextDoctor++
	d.ID = r.s.nextDoctor
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) GetByID(_ context.Context, id int64) (*practice.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, practice.ErrDoctorNotFound
	}
	return &d, nil
}

func (r doctorRepo) GetByName(_ context.Context, firstName, lastName string) (*practice.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.doctors {
		if d.FirstName == firstName && d.LastName == lastName {
			return &d, nil
		}
	}
	return nil, practice.ErrDoctorNotFound
}

func (r doctorRepo) List(_ context.Context) ([]*practice.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*practice.Doctor, 0, len(r.s.doctors))
	for _, id := range sortedKeys(r.s.doctors) {
		d := r.s.doctors[id]
		items = append(items, &d)
	}
	return items, nil
}

func (r doctorRepo) Update(_ context.Context, d *practice.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[d.ID]; !ok {
		return practice.ErrDoctorNotFound
	}
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return practice.ErrDoctorNotFound
	}
	delete(r.s.doctors, id)
	for aid, a := range r.s.associations {
		if a.DoctorID == id {
			r.s.deleteAssociationLocked(aid)
		}
	}
	return nil
}

// =========== Locations ===========

type locationRepo struct{ s *Store }

func (r locationRepo) Create(_ context.Context, l *practice.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.locations {
		if existing.Address == l.Address {
			return apperr.Invalidf("Location already exists in the database: %s", l.Address)
		}
	}
	r.s.nextLocation++
	l.ID = r.s.nextLocation
	r.s.locations[l.ID] = *l
	return nil
}

func (r locationRepo) GetByID(_ context.Context, id int64) (*practice.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, practice.ErrLocationNotFound
	}
	return &l, nil
}

func (r locationRepo) GetByAddress(_ context.Context, address string) (*practice.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.locations {
		if l.Address == address {
			return &l, nil
		}
	}
	return nil, practice.ErrLocationNotFound
}

func (r locationRepo) List(_ context.Context) ([]*practice.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := make([]*practice.Location, 0, len(r.s.locations))
	for _, id := range sortedKeys(r.s.locations) {
		l := r.s.locations[id]
		items = append(items, &l)
	}
	return items, nil
}

func (r locationRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*practice.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	linked := make(map[int64]bool)
	for _, a := range r.s.associations {
		if a.DoctorID == doctorID {
			linked[a.LocationID] = true
		}
	}
	items := []*practice.Location{}
	for _, id := range sortedKeys(r.s.locations) {
		if linked[id] {
			l := r.s.locations[id]
			items = append(items, &l)
		}
	}
	return items, nil
}

func (r locationRepo) Update(_ context.Context, l *practice.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; !ok {
		return practice.ErrLocationNotFound
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r locationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return practice.ErrLocationNotFound
	}
	delete(r.s.locations, id)
	for aid, a := range r.s.associations {
		if a.LocationID == id {
			r.s.deleteAssociationLocked(aid)
		}
	}
	return nil
}

// =========== Associations ===========

type associationRepo struct{ s *Store }

func (r associationRepo) Create(_ context.Context, a *practice.Association) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return practice.ErrDoctorNotFound
	}
	if _, ok := r.s.locations[a.LocationID]; !ok {
		return practice.ErrLocationNotFound
	}
	for _, existing := range r.s.associations {
		if existing.DoctorID == a.DoctorID && existing.LocationID == a.LocationID {
			return practice.ErrAssociationExists
		}
	}
	r.s.nextAssociation++
	a.ID = r.s.nextAssociation
	r.s.associations[a.ID] = *a
	return nil
}

func (r associationRepo) Find(_ context.Context, doctorID, locationID int64) (*practice.Association, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.associations {
		if a.DoctorID == doctorID && a.LocationID == locationID {
			return &a, nil
		}
	}
	return nil, practice.ErrAssociationNotFound
}

func (r associationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.associations[id]; !ok {
		return practice.ErrAssociationNotFound
	}
	r.s.deleteAssociationLocked(id)
	return nil
}
