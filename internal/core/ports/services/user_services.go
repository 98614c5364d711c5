package services

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// UserReaderSvc defines read operations for users, employees and areas
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)

	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployeesByArea(ctx context.Context, areaID string) ([]domain.Employee, error)

	GetAreaByID(ctx context.Context, areaID string) (*domain.Area, error)
	ListAreas(ctx context.Context) ([]domain.Area, error)
}

// UserWriterSvc defines write operations for users, employees and areas
type UserWriterSvc interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error)

	CreateArea(ctx context.Context, req dto.CreateAreaRequest, userID string) (*domain.Area, error)
	UpdateArea(ctx context.Context, areaID string, req dto.UpdateAreaRequest, userID string) (*domain.Area, error)
}

// UserSvcFacade combines the user service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
