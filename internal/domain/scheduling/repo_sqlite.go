package scheduling

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

// =========== Availability Repository ===========

type availabilityRepoSQLite struct{ db *sql.DB }

func NewAvailabilityRepoSQLite(sqlDB *sql.DB) AvailabilityRepository {
	return &availabilityRepoSQLite{db: sqlDB}
}

func (r *availabilityRepoSQLite) conn(ctx context.Context) db.SQLQuerier { return db.SQLConn(ctx, r.db) }

const availSelectSQLite = `
	SELECT a.id, a.doctor_location_id, dl.doctor_id, dl.location_id, a.start_time, a.end_time, a.day_of_week
	FROM availability a
	JOIN doctor_locations dl ON dl.id = a.doctor_location_id`

func (r *availabilityRepoSQLite) scan(row rowScanner) (*Availability, error) {
	var a Availability
	err := row.Scan(&a.ID, &a.AssociationID, &a.DoctorID, &a.LocationID, &a.StartTime, &a.EndTime, &a.DayOfWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan availability: %w", err)
	}
	return &a, nil
}

func (r *availabilityRepoSQLite) Create(ctx context.Context, a *Availability) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO availability (doctor_location_id, start_time, end_time, day_of_week)
		VALUES (?, ?, ?, ?)`,
		a.AssociationID, a.StartTime, a.EndTime, a.DayOfWeek)
	if err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (r *availabilityRepoSQLite) GetByID(ctx context.Context, id int64) (*Availability, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx, availSelectSQLite+` WHERE a.id = ?`, id))
}

func (r *availabilityRepoSQLite) ListByDoctor(ctx context.Context, doctorID int64) ([]*Availability, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, availSelectSQLite+` WHERE dl.doctor_id = ? ORDER BY a.start_time, a.id`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer rows.Close()

	items := []*Availability{}
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *availabilityRepoSQLite) HasOverlap(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability
			WHERE doctor_location_id = ? AND day_of_week = ?
			  AND NOT (end_time <= ? OR start_time >= ?)
		)`, associationID, dayOfWeek, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("availability overlap: %w", err)
	}
	return found, nil
}

func (r *availabilityRepoSQLite) HasCovering(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability
			WHERE doctor_location_id = ? AND day_of_week = ?
			  AND start_time <= ? AND end_time >= ?
		)`, associationID, dayOfWeek, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("availability coverage: %w", err)
	}
	return found, nil
}

func (r *availabilityRepoSQLite) DeleteForDoctor(ctx context.Context, doctorID, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		DELETE FROM availability
		WHERE id = ?
		  AND doctor_location_id IN (SELECT id FROM doctor_locations WHERE doctor_id = ?)`,
		id, doctorID)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return rowsAffected(res, ErrAvailabilityNotFound)
}

// =========== Appointment Repository ===========

type appointmentRepoSQLite struct{ db *sql.DB }

func NewAppointmentRepoSQLite(sqlDB *sql.DB) AppointmentRepository {
	return &appointmentRepoSQLite{db: sqlDB}
}

func (r *appointmentRepoSQLite) conn(ctx context.Context) db.SQLQuerier { return db.SQLConn(ctx, r.db) }

const apptSelectSQLite = `
	SELECT a.id, a.doctor_location_id, dl.doctor_id, dl.location_id, a.start_time, a.end_time, a.day_of_week
	FROM appointments a
	JOIN doctor_locations dl ON dl.id = a.doctor_location_id`

func (r *appointmentRepoSQLite) scan(row rowScanner) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.AssociationID, &a.DoctorID, &a.LocationID, &a.StartTime, &a.EndTime, &a.DayOfWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}

func (r *appointmentRepoSQLite) Create(ctx context.Context, a *Appointment) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO appointments (doctor_location_id, start_time, end_time, day_of_week)
		VALUES (?, ?, ?, ?)`,
		a.AssociationID, a.StartTime, a.EndTime, a.DayOfWeek)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (r *appointmentRepoSQLite) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return r.scan(r.conn(ctx).QueryRowContext(ctx, apptSelectSQLite+` WHERE a.id = ?`, id))
}

func (r *appointmentRepoSQLite) ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, apptSelectSQLite+` WHERE dl.doctor_id = ? ORDER BY a.start_time, a.id`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	items := []*Appointment{}
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoSQLite) HasOverlap(ctx context.Context, associationID int64, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_location_id = ?
			  AND NOT (end_time <= ? OR start_time >= ?)
		)`, associationID, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("appointment overlap: %w", err)
	}
	return found, nil
}

func (r *appointmentRepoSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return rowsAffected(res, ErrAppointmentNotFound)
}
