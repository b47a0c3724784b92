package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incubyte/booking/internal/platform/db"
)

// =========== Availability Repository ===========

type availabilityRepoPG struct{ pool *pgxpool.Pool }

func NewAvailabilityRepoPG(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepoPG{pool: pool}
}

func (r *availabilityRepoPG) conn(ctx context.Context) db.PGQuerier { return db.PGConn(ctx, r.pool) }

const availSelect = `
	SELECT a.id, a.doctor_location_id, dl.doctor_id, dl.location_id, a.start_time, a.end_time, a.day_of_week
	FROM availability a
	JOIN doctor_locations dl ON dl.id = a.doctor_location_id`

func (r *availabilityRepoPG) scan(row pgx.Row) (*Availability, error) {
	var a Availability
	err := row.Scan(&a.ID, &a.AssociationID, &a.DoctorID, &a.LocationID, &a.StartTime, &a.EndTime, &a.DayOfWeek)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan availability: %w", err)
	}
	return &a, nil
}

func (r *availabilityRepoPG) Create(ctx context.Context, a *Availability) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO availability (doctor_location_id, start_time, end_time, day_of_week)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		a.AssociationID, a.StartTime, a.EndTime, a.DayOfWeek).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

func (r *availabilityRepoPG) GetByID(ctx context.Context, id int64) (*Availability, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, availSelect+` WHERE a.id = $1`, id))
}

func (r *availabilityRepoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*Availability, error) {
	rows, err := r.conn(ctx).Query(ctx, availSelect+` WHERE dl.doctor_id = $1 ORDER BY a.start_time, a.id`, doctorID)
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

func (r *availabilityRepoPG) HasOverlap(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability
			WHERE doctor_location_id = $1 AND day_of_week = $2
			  AND NOT (end_time <= $3 OR start_time >= $4)
		)`, associationID, dayOfWeek, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("availability overlap: %w", err)
	}
	return found, nil
}

func (r *availabilityRepoPG) HasCovering(ctx context.Context, associationID int64, dayOfWeek, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability
			WHERE doctor_location_id = $1 AND day_of_week = $2
			  AND start_time <= $3 AND end_time >= $4
		)`, associationID, dayOfWeek, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("availability coverage: %w", err)
	}
	return found, nil
}

func (r *availabilityRepoPG) DeleteForDoctor(ctx context.Context, doctorID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM availability
		WHERE id = $1
		  AND doctor_location_id IN (SELECT id FROM doctor_locations WHERE doctor_id = $2)`,
		id, doctorID)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.PGQuerier { return db.PGConn(ctx, r.pool) }

const apptSelect = `
	SELECT a.id, a.doctor_location_id, dl.doctor_id, dl.location_id, a.start_time, a.end_time, a.day_of_week
	FROM appointments a
	JOIN doctor_locations dl ON dl.id = a.doctor_location_id`

func (r *appointmentRepoPG) scan(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.AssociationID, &a.DoctorID, &a.LocationID, &a.StartTime, &a.EndTime, &a.DayOfWeek)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (doctor_location_id, start_time, end_time, day_of_week)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		a.AssociationID, a.StartTime, a.EndTime, a.DayOfWeek).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, apptSelect+` WHERE a.id = $1`, id))
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, apptSelect+` WHERE dl.doctor_id = $1 ORDER BY a.start_time, a.id`, doctorID)
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

func (r *appointmentRepoPG) HasOverlap(ctx context.Context, associationID int64, start, end string) (bool, error) {
	var found bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_location_id = $1
			  AND NOT (end_time <= $2 OR start_time >= $3)
		)`, associationID, start, end).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("appointment overlap: %w", err)
	}
	return found, nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
