package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/incubyte/booking/internal/platform/db"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func rowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// =========== Doctor Repository ===========

type doctorRepoSQLite struct{ db *sql.DB }

func NewDoctorRepoSQLite(sqlDB *sql.DB) DoctorRepository { return &doctorRepoSQLite{db: sqlDB} }

func (r *doctorRepoSQLite) conn(ctx context.Context) db.SQLQuerier { return db.SQLConn(ctx, r.db) }

func (r *doctorRepoSQLite) scan(row rowScanner) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.FirstName, &d.LastName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("scan doctor: %w", err)
	}
	return &d, nil
}

func (r *doctorRepoSQLite) Create(ctx context.Context, d *Doctor) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO doctors (first_name, last_name) VALUES (?, ?)`, d.FirstName, d.LastName)
	if db.IsUniqueViolation(err) {
		return errDoctorExists(d.FirstName, d.LastName)
	}
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (r *doctorRepoSQLite) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM doctors WHERE id = ?`, id))
}

func (r *doctorRepoSQLite) GetByName(ctx context.Context, firstName, lastName string) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM doctors WHERE first_name = ? AND last_name = ?`,
		firstName, lastName))
}

func (r *doctorRepoSQLite) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `SELECT id, first_name, last_name FROM doctors ORDER BY id`)
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

func (r *doctorRepoSQLite) Update(ctx context.Context, d *Doctor) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE doctors SET first_name = ?, last_name = ? WHERE id = ?`, d.FirstName, d.LastName, d.ID)
	if db.IsUniqueViolation(err) {
		return errDoctorExists(d.FirstName, d.LastName)
	}
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	return rowsAffected(res, ErrDoctorNotFound)
}

func (r *doctorRepoSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM doctors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return rowsAffected(res, ErrDoctorNotFound)
}

// =========== Location Repository ===========

type locationRepoSQLite struct{ db *sql.DB }

func NewLocationRepoSQLite(sqlDB *sql.DB) LocationRepository { return &locationRepoSQLite{db: sqlDB} }

func (r *locationRepoSQLite) conn(ctx context.Context) db.SQLQuerier { return db.SQLConn(ctx, r.db) }

func (r *locationRepoSQLite) scan(row rowScanner) (*Location, error) {
	var l Location
	if err := row.Scan(&l.ID, &l.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}

func (r *locationRepoSQLite) query(ctx context.Context, query string, args ...interface{}) ([]*Location, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
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

func (r *locationRepoSQLite) Create(ctx context.Context, l *Location) error {
	res, err := r.conn(ctx).ExecContext(ctx, `INSERT INTO locations (address) VALUES (?)`, l.Address)
	if db.IsUniqueViolation(err) {
		return errLocationExists(l.Address)
	}
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	l.ID, err = res.LastInsertId()
	return err
}

func (r *locationRepoSQLite) GetByID(ctx context.Context, id int64) (*Location, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx, `SELECT id, address FROM locations WHERE id = ?`, id))
}

func (r *locationRepoSQLite) GetByAddress(ctx context.Context, address string) (*Location, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx, `SELECT id, address FROM locations WHERE address = ?`, address))
}

func (r *locationRepoSQLite) List(ctx context.Context) ([]*Location, error) {
	return r.query(ctx, `SELECT id, address FROM locations ORDER BY id`)
}

func (r *locationRepoSQLite) ListByDoctor(ctx context.Context, doctorID int64) ([]*Location, error) {
	return r.query(ctx, `
		SELECT l.id, l.address
		FROM locations l
		JOIN doctor_locations dl ON dl.location_id = l.id
		WHERE dl.doctor_id = ?
		ORDER BY l.id`, doctorID)
}

func (r *locationRepoSQLite) Update(ctx context.Context, l *Location) error {
	res, err := r.conn(ctx).ExecContext(ctx, `UPDATE locations SET address = ? WHERE id = ?`, l.Address, l.ID)
	if db.IsUniqueViolation(err) {
		return errLocationExists(l.Address)
	}
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return rowsAffected(res, ErrLocationNotFound)
}

func (r *locationRepoSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return rowsAffected(res, ErrLocationNotFound)
}

// =========== Association Repository ===========

type associationRepoSQLite struct{ db *sql.DB }

func NewAssociationRepoSQLite(sqlDB *sql.DB) AssociationRepository {
	return &associationRepoSQLite{db: sqlDB}
}

func (r *associationRepoSQLite) conn(ctx context.Context) db.SQLQuerier { return db.SQLConn(ctx, r.db) }

func (r *associationRepoSQLite) Create(ctx context.Context, a *Association) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO doctor_locations (doctor_id, location_id) VALUES (?, ?)`, a.DoctorID, a.LocationID)
	if db.IsUniqueViolation(err) {
		return ErrAssociationExists
	}
	if err != nil {
		return fmt.Errorf("insert association: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (r *associationRepoSQLite) Find(ctx context.Context, doctorID, locationID int64) (*Association, error) {
	var a Association
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, doctor_id, location_id FROM doctor_locations WHERE doctor_id = ? AND location_id = ?`,
		doctorID, locationID).Scan(&a.ID, &a.DoctorID, &a.LocationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssociationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find association: %w", err)
	}
	return &a, nil
}

func (r *associationRepoSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM doctor_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete association: %w", err)
	}
	return rowsAffected(res, ErrAssociationNotFound)
}
