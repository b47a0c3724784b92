package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incubyte/booking/internal/config"
	"github.com/incubyte/booking/internal/domain/practice"
	"github.com/incubyte/booking/internal/domain/scheduling"
	"github.com/incubyte/booking/internal/platform/db"
	"github.com/incubyte/booking/internal/platform/memstore"
	"github.com/incubyte/booking/migrations"
)

// backend is an opened storage driver with the services built on top of it.
type backend struct {
	driver     string
	practice   *practice.Service
	scheduling *scheduling.Service
	ping       db.PingFunc

	// pool is set for postgres only.
	pool *pgxpool.Pool
	// migrator is nil for the memory store.
	migrator *db.Migrator
	close    func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memoryBackend(), nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		tx := db.NewPGTxRunner(pool)
		prac := practice.NewService(
			practice.NewDoctorRepoPG(pool),
			practice.NewLocationRepoPG(pool),
			practice.NewAssociationRepoPG(pool),
			tx,
		)
		return &backend{
			driver:   cfg.StoreDriver,
			practice: prac,
			scheduling: scheduling.NewService(prac,
				scheduling.NewAvailabilityRepoPG(pool),
				scheduling.NewAppointmentRepoPG(pool),
				tx,
			),
			ping:     pool.Ping,
			pool:     pool,
			migrator: db.NewMigrator(pool, migrations.Postgres()),
			close:    pool.Close,
		}, nil

	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqliteBackend(sqlDB), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func memoryBackend() *backend {
	st := memstore.New()
	prac := practice.NewService(st.Doctors(), st.Locations(), st.Associations(), st)
	return &backend{
		driver:     config.DriverMemory,
		practice:   prac,
		scheduling: scheduling.NewService(prac, st.Availability(), st.Appointments(), st),
		ping:       st.Ping,
		close:      func() {},
	}
}

func sqliteBackend(sqlDB *sql.DB) *backend {
	tx := db.NewSQLTxRunner(sqlDB)
	prac := practice.NewService(
		practice.NewDoctorRepoSQLite(sqlDB),
		practice.NewLocationRepoSQLite(sqlDB),
		practice.NewAssociationRepoSQLite(sqlDB),
		tx,
	)
	return &backend{
		driver:   config.DriverSQLite,
		practice: prac,
		scheduling: scheduling.NewService(prac,
			scheduling.NewAvailabilityRepoSQLite(sqlDB),
			scheduling.NewAppointmentRepoSQLite(sqlDB),
			tx,
		),
		ping:     sqlDB.PingContext,
		migrator: db.NewSQLMigrator(sqlDB, migrations.SQLite()),
		close:    func() { _ = sqlDB.Close() },
	}
}

// seedDemo inserts the demo doctors, locations and availability.
func seedDemo(ctx context.Context, b *backend) (*practice.SeedResult, error) {
	res, err := practice.Seed(ctx, b.practice)
	if err != nil {
		return nil, fmt.Errorf("seed practice: %w", err)
	}
	if err := scheduling.Seed(ctx, b.scheduling, res.JosephLister, res.ParkStreet); err != nil {
		return nil, fmt.Errorf("seed availability: %w", err)
	}
	return res, nil
}
