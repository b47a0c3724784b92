package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incubyte/booking/internal/platform/db"
)

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) db.PGQuerier { return db.PGConn(ctx, r.pool) }

func (r *doctorRepoPG) scan(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	err := r.conn(ctx).QueryRow(ctx,
		`INSERT INTO doctors (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		d.FirstName, d.LastName).Scan(&d.ID)
	if db.IsUniqueViolation(err) {
		return errDoctorExists(d.FirstName, d.LastName)
	}
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT id, first_name, last_name FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByName(ctx context.Context, firstName, lastName string) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx,
		`SELECT id, first_name, last_name FROM doctors WHERE first_name = $1 AND last_name = $2`,
		firstName, lastName))
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, first_name, last_name FROM doctors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	items := []*Doctor{}
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE doctors SET first_name = $2, last_name = $3 WHERE id = $1`,
		d.ID, d.FirstName, d.LastName)
	if db.IsUniqueViolation(err) {
		return errDoctorExists(d.FirstName, d.LastName)
	}
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

// =========== Location Repository ===========

type locationRepoPG struct{ pool *pgxpool.Pool }

func NewLocationRepoPG(pool *pgxpool.Pool) LocationRepository { return &locationRepoPG{pool: pool} }

func (r *locationRepoPG) conn(ctx context.Context) db.PGQuerier { return db.PGConn(ctx, r.pool) }

func (r *locationRepoPG) scan(row pgx.Row) (*Location, error) {
	var l Location
	if err := row.Scan(&l.ID, &l.Address); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}

func (r *locationRepoPG) collect(rows pgx.Rows) ([]*Location, error) {
	defer rows.Close()
	items := []*Location{}
	for rows.Next() {
		l, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

func (r *locationRepoPG) Create(ctx context.Context, l *Location) error {
	err := r.conn(ctx).QueryRow(ctx,
		`INSERT INTO locations (address) VALUES ($1) RETURNING id`, l.Address).Scan(&l.ID)
	if db.IsUniqueViolation(err) {
		return errLocationExists(l.Address)
	}
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *locationRepoPG) GetByID(ctx context.Context, id int64) (*Location, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT id, address FROM locations WHERE id = $1`, id))
}

func (r *locationRepoPG) GetByAddress(ctx context.Context, address string) (*Location, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT id, address FROM locations WHERE address = $1`, address))
}

func (r *locationRepoPG) List(ctx context.Context) ([]*Location, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, address FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return r.collect(rows)
}

func (r *locationRepoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*Location, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT l.id, l.address
		FROM locations l
		JOIN doctor_locations dl ON dl.location_id = l.id
		WHERE dl.doctor_id = $1
		ORDER BY l.id`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list doctor locations: %w", err)
	}
	return r.collect(rows)
}

func (r *locationRepoPG) Update(ctx context.Context, l *Location) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE locations SET address = $2 WHERE id = $1`, l.ID, l.Address)
	if db.IsUniqueViolation(err) {
		return errLocationExists(l.Address)
	}
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *locationRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// =========== Association Repository ===========

type associationRepoPG struct{ pool *pgxpool.Pool }

func NewAssociationRepoPG(pool *pgxpool.Pool) AssociationRepository {
	return &associationRepoPG{pool: pool}
}

func (r *associationRepoPG) conn(ctx context.Context) db.PGQuerier { return db.PGConn(ctx, r.pool) }

func (r *associationRepoPG) Create(ctx context.Context, a *Association) error {
	err := r.conn(ctx).QueryRow(ctx,
		`INSERT INTO doctor_locations (doctor_id, location_id) VALUES ($1, $2) RETURNING id`,
		a.DoctorID, a.LocationID).Scan(&a.ID)
	if db.IsUniqueViolation(err) {
		return ErrAssociationExists
	}
	if err != nil {
		return fmt.Errorf("insert association: %w", err)
	}
	return nil
}

func (r *associationRepoPG) Find(ctx context.Context, doctorID, locationID int64) (*Association, error) {
	var a Association
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, doctor_id, location_id FROM doctor_locations WHERE doctor_id = $1 AND location_id = $2`,
		doctorID, locationID).Scan(&a.ID, &a.DoctorID, &a.LocationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAssociationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find association: %w", err)
	}
	return &a, nil
}

func (r *associationRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete association: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAssociationNotFound
	}
	return nil
}
