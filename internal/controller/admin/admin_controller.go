package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quillback/internal/controller"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/middleware"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/lshigami/Quillback/internal/service"
)

type AdminController struct {
	adminSvc service.AdminService
}

func NewAdminController(adminSvc service.AdminService) *AdminController {
	return &AdminController{adminSvc: adminSvc}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Description System-wide counts, 30-day growth, recent activity and the most prolific creators.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminDashboardDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/dashboard [get]
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	result, err := ctrl.adminSvc.Dashboard()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListUsers godoc
// @Summary List users
// @Description Paginated user list, filterable by role, status (active/inactive) and a username/email search term.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status (active or inactive)"
// @Param search query string false "Match against username or email"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} dto.Page[dto.UserDTO]
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	page, perPage := controller.PageParams(c, 20)
	result, err := ctrl.adminSvc.ListUsers(filter, page, perPage)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleUserStatus godoc
// @Summary Activate or deactivate a user
// @Description Flips the user's active flag. Admins cannot deactivate themselves.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/toggle-status [put]
func (ctrl *AdminController) ToggleUserStatus(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.adminSvc.ToggleUserStatus(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChangeUserRole godoc
// @Summary Change a user's role
// @Description Admins cannot demote themselves.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param role body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (ctrl *AdminController) ChangeUserRole(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.adminSvc.ChangeUserRole(middleware.CurrentUser(c), id, req.Role)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Only users without questionnaires or responses can be deleted; deactivate the account instead to keep its content.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "User still owns content"
// @Router /admin/users/{id} [delete]
func (ctrl *AdminController) DeleteUser(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.adminSvc.DeleteUser(middleware.CurrentUser(c), id); err != nil {
		if errors.Is(err, service.ErrUserHasContent) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "User still owns questionnaires or responses; deactivate the account instead"})
			return
		}
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
