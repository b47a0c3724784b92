package practice

import (
	"context"
	"errors"
	"testing"

	"github.com/incubyte/booking/internal/platform/apperr"
)

// -- Mock Repositories --

type mockDoctorRepo struct {
	doctors map[int64]*Doctor
	nextID  int64
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[int64]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	m.nextID++
	d.ID = m.nextID
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDoctorRepo) GetByName(_ context.Context, first, last string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.FirstName == first && d.LastName == last {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (m *mockDoctorRepo) List(_ context.Context) ([]*Doctor, error) {
	var result []*Doctor
	for i := int64(1); i <= m.nextID; i++ {
		if d, ok := m.doctors[i]; ok {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDoctorRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return ErrDoctorNotFound
	}
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.doctors[id]; !ok {
		return ErrDoctorNotFound
	}
	delete(m.doctors, id)
	return nil
}

type mockLocationRepo struct {
	locations map[int64]*Location
	assocs    *mockAssociationRepo
	nextID    int64
}

func newMockLocationRepo(assocs *mockAssociationRepo) *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[int64]*Location), assocs: assocs}
}

func (m *mockLocationRepo) Create(_ context.Context, l *Location) error {
	m.nextID++
	l.ID = m.nextID
	cp := *l
	m.locations[l.ID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id int64) (*Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *mockLocationRepo) GetByAddress(_ context.Context, address string) (*Location, error) {
	for _, l := range m.locations {
		if l.Address == address {
			cp := *l
			return &cp, nil
		}
	}
	return nil, ErrLocationNotFound
}

func (m *mockLocationRepo) List(_ context.Context) ([]*Location, error) {
	var result []*Location
	for i := int64(1); i <= m.nextID; i++ {
		if l, ok := m.locations[i]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockLocationRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*Location, error) {
	result := []*Location{}
	for _, a := range m.assocs.assocs {
		if a.DoctorID == doctorID {
			if l, ok := m.locations[a.LocationID]; ok {
				result = append(result, l)
			}
		}
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, l *Location) error {
	if _, ok := m.locations[l.ID]; !ok {
		return ErrLocationNotFound
	}
	cp := *l
	m.locations[l.ID] = &cp
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.locations[id]; !ok {
		return ErrLocationNotFound
	}
	delete(m.locations, id)
	return nil
}

type mockAssociationRepo struct {
	assocs map[int64]*Association
	nextID int64
}

func newMockAssociationRepo() *mockAssociationRepo {
	return &mockAssociationRepo{assocs: make(map[int64]*Association)}
}

func (m *mockAssociationRepo) Create(_ context.Context, a *Association) error {
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.assocs[a.ID] = &cp
	return nil
}

func (m *mockAssociationRepo) Find(_ context.Context, doctorID, locationID int64) (*Association, error) {
	for _, a := range m.assocs {
		if a.DoctorID == doctorID && a.LocationID == locationID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrAssociationNotFound
}

func (m *mockAssociationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.assocs[id]; !ok {
		return ErrAssociationNotFound
	}
	delete(m.assocs, id)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() *Service {
	assocs := newMockAssociationRepo()
	return NewService(newMockDoctorRepo(), newMockLocationRepo(assocs), assocs, passthroughTx{})
}

func strPtr(s string) *string { return &s }

// -- Doctor Tests --

func TestAddDoctor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	id, err := svc.AddDoctor(ctx, "Jane", "Wright")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id to be 1, got %d", id)
	}

	d, err := svc.GetDoctor(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.FirstName != "Jane" || d.LastName != "Wright" {
		t.Errorf("unexpected doctor %+v", d)
	}
}

func TestAddDoctor_Duplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddDoctor(ctx, "Jane", "Wright"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.AddDoctor(ctx, "Jane", "Wright")
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid error, got %v", err)
	}
	if err.Error() != "Doctor: Jane Wright already exists in the database" {
		t.Errorf("unexpected message %q", err.Error())
	}

	items, _ := svc.ListDoctors(ctx)
	if len(items) != 1 {
		t.Errorf("expected 1 doctor, got %d", len(items))
	}
}

func TestAddDoctor_BlankName(t *testing.T) {
	svc := newTestService()
	if _, err := svc.AddDoctor(context.Background(), "  ", "Wright"); !errors.Is(err, ErrDoctorNameBlank) {
		t.Errorf("expected ErrDoctorNameBlank, got %v", err)
	}
}

func TestGetDoctor_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.GetDoctor(context.Background(), 42); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestUpdateDoctor_Partial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id, _ := svc.AddDoctor(ctx, "Jane", "Wright")

	if err := svc.UpdateDoctor(ctx, id, DoctorPatch{LastName: strPtr("Austen")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	d, _ := svc.GetDoctor(ctx, id)
	if d.FirstName != "Jane" || d.LastName != "Austen" {
		t.Errorf("expected Jane Austen, got %s %s", d.FirstName, d.LastName)
	}
}

func TestUpdateDoctor_NameCollision(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.AddDoctor(ctx, "Jane", "Wright")
	id, _ := svc.AddDoctor(ctx, "Joseph", "Lister")

	err := svc.UpdateDoctor(ctx, id, DoctorPatch{FirstName: strPtr("Jane"), LastName: strPtr("Wright")})
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid error, got %v", err)
	}
	d, _ := svc.GetDoctor(ctx, id)
	if d.FirstName != "Joseph" {
		t.Errorf("doctor should be unchanged, got %+v", d)
	}
}

func TestUpdateDoctor_SameNameIsNoop(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id, _ := svc.AddDoctor(ctx, "Jane", "Wright")

	if err := svc.UpdateDoctor(ctx, id, DoctorPatch{FirstName: strPtr("Jane")}); err != nil {
		t.Errorf("renaming to own name should succeed, got %v", err)
	}
}

func TestUpdateDoctor_NotFound(t *testing.T) {
	svc := newTestService()
	err := svc.UpdateDoctor(context.Background(), 7, DoctorPatch{FirstName: strPtr("X")})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestDeleteDoctor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id, _ := svc.AddDoctor(ctx, "Jane", "Wright")

	if err := svc.DeleteDoctor(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetDoctor(ctx, id); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected doctor to be gone, got %v", err)
	}
}

func TestDeleteDoctor_NotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.AddDoctor(ctx, "Jane", "Wright")

	if err := svc.DeleteDoctor(ctx, 99); !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	items, _ := svc.ListDoctors(ctx)
	if len(items) != 1 {
		t.Errorf("storage should be unchanged, got %d doctors", len(items))
	}
}

// -- Location Tests --

func TestAddLocation_Duplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddLocation(ctx, "1 Park St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.AddLocation(ctx, "1 Park St")
	if !apperr.IsInvalid(err) {
		t.Fatalf("expected invalid error, got %v", err)
	}
	if err.Error() != "Location already exists in the database: 1 Park St" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAddLocation_Blank(t *testing.T) {
	svc := newTestService()
	if _, err := svc.AddLocation(context.Background(), ""); !errors.Is(err, ErrAddressBlank) {
		t.Errorf("expected ErrAddressBlank, got %v", err)
	}
}

func TestUpdateLocation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	id, _ := svc.AddLocation(ctx, "1 Park St")

	if err := svc.UpdateLocation(ctx, id, LocationPatch{Address: strPtr("3 Harbour Rd")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	l, _ := svc.GetLocation(ctx, id)
	if l.Address != "3 Harbour Rd" {
		t.Errorf("expected new address, got %q", l.Address)
	}

	if err := svc.UpdateLocation(ctx, id, LocationPatch{}); err != nil {
		t.Errorf("empty patch should succeed, got %v", err)
	}
	if err := svc.UpdateLocation(ctx, 99, LocationPatch{}); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestDeleteLocation_NotFound(t *testing.T) {
	svc := newTestService()
	if err := svc.DeleteLocation(context.Background(), 1); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

// -- Association Tests --

func TestAssociate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	doc, _ := svc.AddDoctor(ctx, "Jane", "Wright")
	loc, _ := svc.AddLocation(ctx, "1 Park St")

	id, err := svc.Associate(ctx, doc, loc)
	if err != nil {
		t.Fatalf("associate: %v", err)
	}

	got, err := svc.LookupAssociation(ctx, doc, loc)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != id {
		t.Errorf("expected association %d, got %d", id, got)
	}

	if _, err := svc.Associate(ctx, doc, loc); !errors.Is(err, ErrAssociationExists) {
		t.Errorf("expected ErrAssociationExists, got %v", err)
	}
}

func TestAssociate_MissingRefs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	doc, _ := svc.AddDoctor(ctx, "Jane", "Wright")
	loc, _ := svc.AddLocation(ctx, "1 Park St")

	if _, err := svc.Associate(ctx, 99, loc); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
	if _, err := svc.Associate(ctx, doc, 99); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestDeassociate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	doc, _ := svc.AddDoctor(ctx, "Jane", "Wright")
	loc, _ := svc.AddLocation(ctx, "1 Park St")

	if err := svc.Deassociate(ctx, doc, loc); !errors.Is(err, ErrAssociationNotFound) {
		t.Errorf("expected ErrAssociationNotFound before associating, got %v", err)
	}

	svc.Associate(ctx, doc, loc)
	if err := svc.Deassociate(ctx, doc, loc); err != nil {
		t.Fatalf("deassociate: %v", err)
	}
	if _, err := svc.LookupAssociation(ctx, doc, loc); !errors.Is(err, ErrAssociationNotFound) {
		t.Errorf("expected association to be gone, got %v", err)
	}
}

func TestListDoctorLocations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	doc, _ := svc.AddDoctor(ctx, "Joseph", "Lister")
	park, _ := svc.AddLocation(ctx, "1 Park St")
	svc.AddLocation(ctx, "2 University Ave")

	items, err := svc.ListDoctorLocations(ctx, doc)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil list, got %v", items)
	}

	svc.Associate(ctx, doc, park)
	items, _ = svc.ListDoctorLocations(ctx, doc)
	if len(items) != 1 || items[0].ID != park {
		t.Errorf("expected only Park St, got %v", items)
	}

	if _, err := svc.ListDoctorLocations(ctx, 99); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

// -- Seed --

func TestSeed_Idempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := Seed(ctx, svc)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := Seed(ctx, svc)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if *first != *second {
		t.Errorf("seed should reuse rows: %+v vs %+v", first, second)
	}

	doctors, _ := svc.ListDoctors(ctx)
	locations, _ := svc.ListLocations(ctx)
	if len(doctors) != 2 || len(locations) != 2 {
		t.Errorf("expected 2 doctors and 2 locations, got %d and %d", len(doctors), len(locations))
	}

	id, err := svc.LookupAssociation(ctx, first.JosephLister, first.ParkStreet)
	if err != nil || id != first.JosephAtParkStreet {
		t.Errorf("expected Joseph at Park St association %d, got %d (%v)", first.JosephAtParkStreet, id, err)
	}
	if _, err := svc.LookupAssociation(ctx, first.JaneWright, first.UniversityAve); !errors.Is(err, ErrAssociationNotFound) {
		t.Errorf("Jane should not practice at University Ave, got %v", err)
	}
}
