package db

import (
	"context"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

// HasTestDatabase reports whether Postgres integration tests can run.
func HasTestDatabase() bool {
	return os.Getenv("TEST_POSTGRESQL_URL") != ""
}

func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		panic("TEST_POSTGRESQL_URL must be set.")
	}
	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	if migrationsPath == "" {
		panic("TEST_MIGRATIONS_PATH must be set.")
	}
	if err := ApplyMigrations(migrationsPath, connString); err != nil {
		panic(err.Error())
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE storage")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
