package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
	"github.com/tahina-mg/pos_management_app/internal/middleware"
	"github.com/tahina-mg/pos_management_app/internal/utils"
)

// userService provides user, employee and area operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a user with a bcrypt hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a paginated user listing.
func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, err := s.userRepo.ListUsers(ctx, params.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates user details, rehashing the password when one is given.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// CreateEmployee registers a staff member in an area.
func (s *userService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID: uuid.NewString(),
		AreaID:     req.AreaID,
		Name:       req.Name,
		Role:       req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	return &employee, nil
}

// GetEmployeeByID retrieves an employee.
func (s *userService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.userRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// ListEmployeesByArea retrieves the staff of an area.
func (s *userService) ListEmployeesByArea(ctx context.Context, areaID string) ([]domain.Employee, error) {
	employees, err := s.userRepo.ListEmployeesByArea(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for area %s: %w", areaID, err)
	}
	return employees, nil
}

// UpdateEmployee updates staff details.
func (s *userService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error) {
	employee, err := s.userRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = userID
	if err := s.userRepo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}
	return employee, nil
}

// CreateArea registers a point of sale.
func (s *userService) CreateArea(ctx context.Context, req dto.CreateAreaRequest, userID string) (*domain.Area, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	area := domain.Area{
		AreaID:   uuid.NewString(),
		Name:     req.Name,
		Location: req.Location,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveArea(ctx, area); err != nil {
		logger.Error("Failed to save area", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save area: %w", err)
	}
	logger.Info("Area created", slog.String("area_id", area.AreaID), slog.String("name", area.Name))
	return &area, nil
}

// GetAreaByID retrieves a point of sale.
func (s *userService) GetAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	area, err := s.userRepo.FindAreaByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to find area %s: %w", areaID, err)
	}
	return area, nil
}

// ListAreas retrieves all points of sale.
func (s *userService) ListAreas(ctx context.Context) ([]domain.Area, error) {
	areas, err := s.userRepo.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}

// UpdateArea updates point of sale details.
func (s *userService) UpdateArea(ctx context.Context, areaID string, req dto.UpdateAreaRequest, userID string) (*domain.Area, error) {
	area, err := s.userRepo.FindAreaByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to find area %s: %w", areaID, err)
	}
	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.Location != nil {
		area.Location = *req.Location
	}
	area.LastUpdatedAt = time.Now().UTC()
	area.LastUpdatedBy = userID
	if err := s.userRepo.UpdateArea(ctx, *area); err != nil {
		return nil, fmt.Errorf("failed to update area %s: %w", areaID, err)
	}
	return area, nil
}
