package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

const userColumns = `
	user_id, name, username, password_hash, refresh_token_hash, refresh_token_expiry,
	created_at, created_by, last_updated_at, last_updated_by`

type pgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.UserRepositoryFacade {
	return &pgxUserRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var tokenHash sql.NullString
	err := row.Scan(
		&u.UserID, &u.Name, &u.Username, &u.PasswordHash, &tokenHash, &u.RefreshTokenExpiryTime,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if tokenHash.Valid {
		u.RefreshTokenHash = tokenHash.String
	}
	return &u, nil
}

func (r *pgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}
	return user, nil
}

func (r *pgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}
	return user, nil
}

func (r *pgxUserRepository) ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username ASC LIMIT $1 OFFSET $2`

	rows, err := r.Pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read users", err)
	}
	return users, nil
}

func (r *pgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Username, user.PasswordHash,
		nullIfEmpty(user.RefreshTokenHash), user.RefreshTokenExpiryTime,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save user", err)
	}
	return nil
}

func (r *pgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET name = $2, username = $3, password_hash = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Name, user.Username, user.PasswordHash,
		user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdateUserRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry = $3, last_updated_at = $4
		WHERE user_id = $1`

	tag, err := r.Pool.Exec(ctx, query, userID, nullIfEmpty(tokenHash), expiresAt, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, area_id, name, role,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM employees WHERE employee_id = $1`

	var e domain.Employee
	err := r.Pool.QueryRow(ctx, query, employeeID).Scan(
		&e.EmployeeID, &e.AreaID, &e.Name, &e.Role,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee", err)
	}
	return &e, nil
}

func (r *pgxUserRepository) ListEmployeesByArea(ctx context.Context, areaID string) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, area_id, name, role,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM employees WHERE area_id = $1 ORDER BY name ASC`

	rows, err := r.Pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list employees", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		err := rows.Scan(
			&e.EmployeeID, &e.AreaID, &e.Name, &e.Role,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read employees", err)
	}
	return employees, nil
}

func (r *pgxUserRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (employee_id, area_id, name, role,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.Pool.Exec(ctx, query,
		employee.EmployeeID, employee.AreaID, employee.Name, employee.Role,
		employee.CreatedAt, employee.CreatedBy, employee.LastUpdatedAt, employee.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save employee", err)
	}
	return nil
}

func (r *pgxUserRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE employee_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		employee.EmployeeID, employee.Name, employee.Role,
		employee.LastUpdatedAt, employee.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	query := `
		SELECT area_id, name, location,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM areas WHERE area_id = $1`

	var a domain.Area
	err := r.Pool.QueryRow(ctx, query, areaID).Scan(
		&a.AreaID, &a.Name, &a.Location,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find area", err)
	}
	return &a, nil
}

func (r *pgxUserRepository) ListAreas(ctx context.Context) ([]domain.Area, error) {
	query := `
		SELECT area_id, name, location,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM areas ORDER BY name ASC`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list areas", err)
	}
	defer rows.Close()

	areas := make([]domain.Area, 0)
	for rows.Next() {
		var a domain.Area
		err := rows.Scan(
			&a.AreaID, &a.Name, &a.Location,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan area", err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read areas", err)
	}
	return areas, nil
}

func (r *pgxUserRepository) SaveArea(ctx context.Context, area domain.Area) error {
	query := `
		INSERT INTO areas (area_id, name, location,
		                   created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.Pool.Exec(ctx, query,
		area.AreaID, area.Name, area.Location,
		area.CreatedAt, area.CreatedBy, area.LastUpdatedAt, area.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save area", err)
	}
	return nil
}

func (r *pgxUserRepository) UpdateArea(ctx context.Context, area domain.Area) error {
	query := `
		UPDATE areas
		SET name = $2, location = $3, last_updated_at = $4, last_updated_by = $5
		WHERE area_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		area.AreaID, area.Name, area.Location,
		area.LastUpdatedAt, area.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update area", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
