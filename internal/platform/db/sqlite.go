package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens the sqlite database at path with foreign keys enforced.
// SQLite allows a single writer, so the pool is limited to one connection;
// transactions therefore serialize in-process.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(connMaxLifetime(path))

	pragmas := []string{`PRAGMA foreign_keys=ON`}
	if !isMemoryPath(path) {
		pragmas = append(pragmas, `PRAGMA journal_mode=WAL`)
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return sqlDB, nil
}

// An in-memory database lives only as long as its connection, so that
// connection is never recycled.
func connMaxLifetime(path string) time.Duration {
	if isMemoryPath(path) {
		return 0
	}
	return time.Hour
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
