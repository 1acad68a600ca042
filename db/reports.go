package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tdp-hub/tdp-report-services/models"
)

const (
	reportFileColumns = `id, original_filename, slug, extension, section, quarter, year, stt_id, user_id, version, created_at`

	getReportYearsQuery = `SELECT DISTINCT year FROM report_files WHERE stt_id = $1`

	nextReportVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM report_files
		WHERE stt_id = $1 AND year = $2 AND quarter = $3 AND section = $4`

	insertReportFileQuery = `INSERT INTO report_files (` + reportFileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	getLatestReportFileQuery = `SELECT ` + reportFileColumns + ` FROM report_files
		WHERE stt_id = $1 AND year = $2 AND quarter = $3 AND section = $4
		ORDER BY version DESC LIMIT 1`
)

// GetReportYears returns the distinct years that have report files for an
// STT, in the order the database produces them.
func (r *ReportDB) GetReportYears(ctx context.Context, sttID int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, getReportYearsQuery, sttID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving report years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("error scanning report years: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report years: %w", err)
	}
	return years, nil
}

// CreateReportFile stores a report file record as the next version of its
// (stt, year, quarter, section).
func (r *ReportDB) CreateReportFile(ctx context.Context, rf *models.ReportFile) (*models.ReportFile, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	created := *rf
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	created.CreatedAt = time.Now().UTC()

	err = tx.QueryRowContext(ctx, nextReportVersionQuery,
		created.STT, created.Year, created.Quarter, created.Section).Scan(&created.Version)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error retrieving report version: %w", err)
	}

	err = r.execQuery(ctx, tx, insertReportFileQuery,
		created.ID, created.OriginalFilename, created.Slug, created.Extension, created.Section,
		created.Quarter, created.Year, created.STT, created.User, created.Version, created.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error inserting report file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	r.Log.Debug().Str("report_file", created.ID.String()).Int("version", created.Version).Msg("report file stored")
	return &created, nil
}

// GetLatestReportFile returns the highest version of a report, or nil if no
// version exists.
func (r *ReportDB) GetLatestReportFile(ctx context.Context, sttID, year int, quarter, section string) (*models.ReportFile, error) {
	var rf models.ReportFile
	err := r.DB.QueryRowContext(ctx, getLatestReportFileQuery, sttID, year, quarter, section).Scan(
		&rf.ID,
		&rf.OriginalFilename,
		&rf.Slug,
		&rf.Extension,
		&rf.Section,
		&rf.Quarter,
		&rf.Year,
		&rf.STT,
		&rf.User,
		&rf.Version,
		&rf.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning report file: %w", err)
	}
	return &rf, nil
}
