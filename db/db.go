package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tdp-hub/tdp-report-services/db/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

type ReportDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewReportDB opens the database and checks that it is reachable.
func NewReportDB(driver, source string, log *zerolog.Logger) (*ReportDB, error) {
	if source == "" {
		log.Error().Msg("database source is not set")
		return nil, fmt.Errorf("database source is not set")
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		db.Close()
		return nil, err
	}

	return &ReportDB{DB: db, Log: log}, nil
}

func (r *ReportDB) Close() error {
	if err := r.DB.Close(); err != nil {
		return err
	}
	r.Log.Info().Msg("database connection closed")
	return nil
}

// Migrate applies the embedded goose migrations.
func (r *ReportDB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, r.DB, "."); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	r.Log.Info().Msg("Migrations applied successfully")
	return nil
}

func (r *ReportDB) execQuery(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) error {
	if r.DB == nil {
		return fmt.Errorf("database connection is not established")
	}

	_, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
