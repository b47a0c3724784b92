package practice

import (
	"context"
)

// DoctorRepository persists doctors. Lookups of a missing row return
// ErrDoctorNotFound.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetByName(ctx context.Context, firstName, lastName string) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id int64) error
}

type LocationRepository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	GetByAddress(ctx context.Context, address string) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id int64) error
}

type AssociationRepository interface {
	Create(ctx context.Context, a *Association) error
	Find(ctx context.Context, doctorID, locationID int64) (*Association, error)
	Delete(ctx context.Context, id int64) error
}
