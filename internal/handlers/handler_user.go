package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// userHandler handles user, employee and area requests.
type userHandler struct {
	service portssvc.UserSvcFacade
}

func newUserHandler(service portssvc.UserSvcFacade) *userHandler {
	return &userHandler{service: service}
}

func registerUserRoutes(group *gin.RouterGroup, service portssvc.UserSvcFacade) {
	h := newUserHandler(service)
	users := group.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
	}

	employees := group.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
	}

	areas := group.Group("/areas")
	{
		areas.POST("", h.createArea)
		areas.GET("", h.listAreas)
		areas.GET("/:id", h.getArea)
		areas.PUT("/:id", h.updateArea)
		areas.GET("/:id/employees", h.listEmployeesByArea)
	}
}

// getUser godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.service.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// updateUser godoc
// @Summary Update user details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createEmployee godoc
// @Summary Register an employee
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body dto.CreateEmployeeRequest true "Employee Info"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees [post]
func (h *userHandler) createEmployee(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	employee, err := h.service.CreateEmployee(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// getEmployee godoc
// @Summary Get employee by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} domain.Employee
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees/{id} [get]
func (h *userHandler) getEmployee(c *gin.Context) {
	employee, err := h.service.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// updateEmployee godoc
// @Summary Update employee details
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} domain.Employee
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /employees/{id} [put]
func (h *userHandler) updateEmployee(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	employee, err := h.service.UpdateEmployee(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// listEmployeesByArea godoc
// @Summary List employees of an area
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Success 200 {array} domain.Employee
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/employees [get]
func (h *userHandler) listEmployeesByArea(c *gin.Context) {
	employees, err := h.service.ListEmployeesByArea(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// createArea godoc
// @Summary Register a point of sale
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param area body dto.CreateAreaRequest true "Area Info"
// @Success 201 {object} domain.Area
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas [post]
func (h *userHandler) createArea(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	area, err := h.service.CreateArea(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create area")
		return
	}
	c.JSON(http.StatusCreated, area)
}

// getArea godoc
// @Summary Get area by ID
// @Tags areas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Success 200 {object} domain.Area
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id} [get]
func (h *userHandler) getArea(c *gin.Context) {
	area, err := h.service.GetAreaByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve area")
		return
	}
	c.JSON(http.StatusOK, area)
}

// listAreas godoc
// @Summary List areas
// @Tags areas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Area
// @Failure 500 {object} ErrorResponse
// @Router /areas [get]
func (h *userHandler) listAreas(c *gin.Context) {
	areas, err := h.service.ListAreas(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list areas")
		return
	}
	c.JSON(http.StatusOK, areas)
}

// updateArea godoc
// @Summary Update area details
// @Tags areas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param area body dto.UpdateAreaRequest true "Fields to update"
// @Success 200 {object} domain.Area
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id} [put]
func (h *userHandler) updateArea(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	area, err := h.service.UpdateArea(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update area")
		return
	}
	c.JSON(http.StatusOK, area)
}
