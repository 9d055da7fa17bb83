package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quillback/internal/controller"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/middleware"
	"github.com/lshigami/Quillback/internal/service"
)

type ResponseController struct {
	responseSvc service.ResponseService
}

func NewResponseController(responseSvc service.ResponseService) *ResponseController {
	return &ResponseController{responseSvc: responseSvc}
}

// Submit godoc
// @Summary Submit or save a response
// @Description Records answers for a questionnaire. With save_draft true the answers are stored as an editable draft; otherwise the response is finalized, which requires every required question to be answered. A failed final submission stores nothing.
// @Tags responses
// @Accept json
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Param response body dto.ResponseSubmitRequest true "Answers"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ValidationErrorResponse "Missing required answers"
// @Failure 403 {object} dto.ErrorResponse "Responding not allowed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/responses [post]
func (ctrl *ResponseController) Submit(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ResponseSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	meta := service.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	result, err := ctrl.responseSvc.Submit(middleware.CurrentUser(c), id, req, meta)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List godoc
// @Summary List completed responses
// @Description Completed responses for a questionnaire, newest first. Owner and admin only.
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} dto.Page[dto.ResponseSummaryDTO]
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/responses [get]
func (ctrl *ResponseController) List(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	page, perPage := controller.PageParams(c, 20)
	result, err := ctrl.responseSvc.ListComplete(middleware.CurrentUser(c), id, page, perPage)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get a response with its answers
// @Description Owner and admin only. Answers carry their question text and type for display.
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Success 200 {object} dto.ResponseDetailDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /responses/{id} [get]
func (ctrl *ResponseController) Get(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.responseSvc.Get(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a response
// @Description Removes the response and its answers. Owner and admin only.
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Response ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /responses/{id} [delete]
func (ctrl *ResponseController) Delete(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.responseSvc.Delete(middleware.CurrentUser(c), id); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
