package practice

import (
	"context"
	"errors"
	"strings"

	"github.com/incubyte/booking/internal/platform/db"
)

type Service struct {
	doctors      DoctorRepository
	locations    LocationRepository
	associations AssociationRepository
	tx           db.TxRunner
}

func NewService(doctors DoctorRepository, locations LocationRepository, assoc AssociationRepository, tx db.TxRunner) *Service {
	return &Service{doctors: doctors, locations: locations, associations: assoc, tx: tx}
}

// -- Doctor --

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// AddDoctor stores a new doctor and returns its id. A doctor with the same
// first and last name may exist only once.
func (s *Service) AddDoctor(ctx context.Context, firstName, lastName string) (int64, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return 0, ErrDoctorNameBlank
	}

	d := &Doctor{FirstName: firstName, LastName: lastName}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.ensureDoctorNameFree(ctx, firstName, lastName, 0); err != nil {
			return err
		}
		return s.doctors.Create(ctx, d)
	})
	if err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id int64, patch DoctorPatch) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		d, err := s.doctors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.FirstName != nil {
			d.FirstName = strings.TrimSpace(*patch.FirstName)
		}
		if patch.LastName != nil {
			d.LastName = strings.TrimSpace(*patch.LastName)
		}
		if d.FirstName == "" || d.LastName == "" {
			return ErrDoctorNameBlank
		}
		if err := s.ensureDoctorNameFree(ctx, d.FirstName, d.LastName, d.ID); err != nil {
			return err
		}
		return s.doctors.Update(ctx, d)
	})
}

// DeleteDoctor removes the doctor together with its associations and
// everything booked against them.
func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.doctors.Delete(ctx, id)
	})
}

// ListDoctorLocations returns the locations a doctor is associated with.
func (s *Service) ListDoctorLocations(ctx context.Context, doctorID int64) ([]*Location, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.locations.ListByDoctor(ctx, doctorID)
}

func (s *Service) ensureDoctorNameFree(ctx context.Context, firstName, lastName string, self int64) error {
	existing, err := s.doctors.GetByName(ctx, firstName, lastName)
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return errDoctorExists(firstName, lastName)
	}
	return nil
}

// -- Location --

func (s *Service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.locations.List(ctx)
}

func (s *Service) GetLocation(ctx context.Context, id int64) (*Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *Service) AddLocation(ctx context.Context, address string) (int64, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return 0, ErrAddressBlank
	}

	l := &Location{Address: address}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.ensureAddressFree(ctx, address, 0); err != nil {
			return err
		}
		return s.locations.Create(ctx, l)
	})
	if err != nil {
		return 0, err
	}
	return l.ID, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id int64, patch LocationPatch) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		l, err := s.locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Address == nil {
			return nil
		}
		address := strings.TrimSpace(*patch.Address)
		if address == "" {
			return ErrAddressBlank
		}
		if err := s.ensureAddressFree(ctx, address, l.ID); err != nil {
			return err
		}
		l.Address = address
		return s.locations.Update(ctx, l)
	})
}

func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.locations.Delete(ctx, id)
	})
}

func (s *Service) ensureAddressFree(ctx context.Context, address string, self int64) error {
	existing, err := s.locations.GetByAddress(ctx, address)
	switch {
	case errors.Is(err, ErrLocationNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return errLocationExists(address)
	}
	return nil
}

// -- Association --

// Associate links a doctor to a location and returns the association id.
func (s *Service) Associate(ctx context.Context, doctorID, locationID int64) (int64, error) {
	a := &Association{DoctorID: doctorID, LocationID: locationID}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.ensureRefs(ctx, doctorID, locationID); err != nil {
			return err
		}
		_, err := s.associations.Find(ctx, doctorID, locationID)
		switch {
		case err == nil:
			return ErrAssociationExists
		case !errors.Is(err, ErrAssociationNotFound):
			return err
		}
		return s.associations.Create(ctx, a)
	})
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

// Deassociate removes the link between a doctor and a location, and with it
// every availability slot and appointment recorded against the link.
func (s *Service) Deassociate(ctx context.Context, doctorID, locationID int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.ensureRefs(ctx, doctorID, locationID); err != nil {
			return err
		}
		a, err := s.associations.Find(ctx, doctorID, locationID)
		if err != nil {
			return err
		}
		return s.associations.Delete(ctx, a.ID)
	})
}

// LookupAssociation returns the id of the association between the doctor and
// the location, or ErrAssociationNotFound.
func (s *Service) LookupAssociation(ctx context.Context, doctorID, locationID int64) (int64, error) {
	a, err := s.associations.Find(ctx, doctorID, locationID)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *Service) ensureRefs(ctx context.Context, doctorID, locationID int64) error {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return err
	}
	if _, err := s.locations.GetByID(ctx, locationID); err != nil {
		return err
	}
	return nil
}
