package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tdp-hub/tdp-report-services/models"
)

const (
	userColumns = `id, username, first_name, last_name, is_admin, stt_id`

	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	getUsersQuery          = `SELECT ` + userColumns + ` FROM users ORDER BY username`
	getUserRolesQuery      = `SELECT g.id, g.name FROM groups g JOIN user_groups ug ON ug.group_id = g.id WHERE ug.user_id = $1 ORDER BY g.id`
	getRolesQuery          = `SELECT id, name FROM groups ORDER BY id`
	getSTTQuery            = `SELECT id, type, COALESCE(code, ''), name FROM stts WHERE id = $1`
	updateProfileQuery     = `UPDATE users SET first_name = $1, last_name = $2, stt_id = $3 WHERE id = $4`
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var stt sql.NullInt64
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.IsAdmin, &stt); err != nil {
		return u, err
	}
	if stt.Valid {
		id := int(stt.Int64)
		u.STT = &id
	}
	return u, nil
}

// GetUserByUsername retrieves a user and their group memberships. A missing
// user yields a nil user and a nil error.
func (r *ReportDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, getUserByUsernameQuery, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if u.Groups, err = r.getUserGroups(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUsers retrieves every user with their group memberships.
func (r *ReportDB) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, getUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	for i := range users {
		if users[i].Groups, err = r.getUserGroups(ctx, users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// GetUserRoles retrieves the group rows a user belongs to.
func (r *ReportDB) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]models.Role, error) {
	return r.queryRoles(ctx, getUserRolesQuery, userID)
}

// GetRoles retrieves every group row.
func (r *ReportDB) GetRoles(ctx context.Context) ([]models.Role, error) {
	return r.queryRoles(ctx, getRolesQuery)
}

// GetSTT retrieves an STT by id, or nil if it does not exist.
func (r *ReportDB) GetSTT(ctx context.Context, id int) (*models.STT, error) {
	var stt models.STT
	err := r.DB.QueryRowContext(ctx, getSTTQuery, id).Scan(&stt.ID, &stt.Type, &stt.Code, &stt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning stt: %w", err)
	}
	return &stt, nil
}

// UpdateUserProfile sets a user's name and STT.
func (r *ReportDB) UpdateUserProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, sttID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := r.execQuery(ctx, tx, updateProfileQuery, firstName, lastName, sttID, userID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error updating user profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// getUserGroups maps a user's group rows onto known groups. Rows with names
// that are not known groups are skipped.
func (r *ReportDB) getUserGroups(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	roles, err := r.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	for _, role := range roles {
		g, ok := models.ParseGroup(role.Name)
		if !ok {
			r.Log.Debug().Str("group", role.Name).Msg("skipping unknown group")
			continue
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *ReportDB) queryRoles(ctx context.Context, query string, args ...interface{}) ([]models.Role, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("error scanning groups: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return roles, nil
}
