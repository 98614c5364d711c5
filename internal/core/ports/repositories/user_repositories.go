package repositories

import (
	"context"
	"time"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// UserReader defines read operations for users, employees and areas.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error)

	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployeesByArea(ctx context.Context, areaID string) ([]domain.Employee, error)

	FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error)
	ListAreas(ctx context.Context) ([]domain.Area, error)
}

// UserWriter defines write operations for users, employees and areas.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserRefreshToken stores the hashed refresh token and its expiry,
	// clearing both when the hash is empty.
	UpdateUserRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error

	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	SaveArea(ctx context.Context, area domain.Area) error
	UpdateArea(ctx context.Context, area domain.Area) error
}

// UserRepositoryFacade combines the user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
