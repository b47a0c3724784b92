package practice

import (
	"context"
	"errors"
	"fmt"
)

// SeedResult holds the ids of the demo rows.
type SeedResult struct {
	JaneWright    int64
	JosephLister  int64
	ParkStreet    int64
	UniversityAve int64

	// JosephAtParkStreet is the association that carries the demo availability.
	JosephAtParkStreet int64
}

// Seed inserts the demo doctors, locations and associations. Rows that
// already exist are reused, so Seed can run on every start.
func Seed(ctx context.Context, svc *Service) (*SeedResult, error) {
	var res SeedResult
	var err error

	if res.JaneWright, err = svc.ensureDoctor(ctx, "Jane", "Wright"); err != nil {
		return nil, err
	}
	if res.JosephLister, err = svc.ensureDoctor(ctx, "Joseph", "Lister"); err != nil {
		return nil, err
	}
	if res.ParkStreet, err = svc.ensureLocation(ctx, "1 Park St"); err != nil {
		return nil, err
	}
	if res.UniversityAve, err = svc.ensureLocation(ctx, "2 University Ave"); err != nil {
		return nil, err
	}

	if _, err = svc.ensureAssociation(ctx, res.JaneWright, res.ParkStreet); err != nil {
		return nil, err
	}
	if res.JosephAtParkStreet, err = svc.ensureAssociation(ctx, res.JosephLister, res.ParkStreet); err != nil {
		return nil, err
	}
	if _, err = svc.ensureAssociation(ctx, res.JosephLister, res.UniversityAve); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) ensureDoctor(ctx context.Context, firstName, lastName string) (int64, error) {
	d, err := s.doctors.GetByName(ctx, firstName, lastName)
	if err == nil {
		return d.ID, nil
	}
	if !errors.Is(err, ErrDoctorNotFound) {
		return 0, fmt.Errorf("seed doctor %s %s: %w", firstName, lastName, err)
	}
	return s.AddDoctor(ctx, firstName, lastName)
}

func (s *Service) ensureLocation(ctx context.Context, address string) (int64, error) {
	l, err := s.locations.GetByAddress(ctx, address)
	if err == nil {
		return l.ID, nil
	}
	if !errors.Is(err, ErrLocationNotFound) {
		return 0, fmt.Errorf("seed location %s: %w", address, err)
	}
	return s.AddLocation(ctx, address)
}

func (s *Service) ensureAssociation(ctx context.Context, doctorID, locationID int64) (int64, error) {
	id, err := s.LookupAssociation(ctx, doctorID, locationID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrAssociationNotFound) {
		return 0, fmt.Errorf("seed association %d/%d: %w", doctorID, locationID, err)
	}
	return s.Associate(ctx, doctorID, locationID)
}
