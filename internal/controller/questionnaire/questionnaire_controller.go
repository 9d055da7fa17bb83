package questionnaire

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quillback/internal/controller"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/middleware"
	"github.com/lshigami/Quillback/internal/service"
)

type QuestionnaireController struct {
	questionnaireSvc service.QuestionnaireService
	questionSvc      service.QuestionService
}

func NewQuestionnaireController(questionnaireSvc service.QuestionnaireService, questionSvc service.QuestionService) *QuestionnaireController {
	return &QuestionnaireController{questionnaireSvc: questionnaireSvc, questionSvc: questionSvc}
}

// Create godoc
// @Summary Create a questionnaire
// @Description Creators and admins only. New questionnaires start active; visibility defaults to public.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionnaire body dto.QuestionnaireCreateRequest true "Questionnaire data"
// @Success 201 {object} dto.QuestionnaireDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires [post]
func (ctrl *QuestionnaireController) Create(c *gin.Context) {
	var req dto.QuestionnaireCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.questionnaireSvc.Create(middleware.CurrentUser(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List godoc
// @Summary List accessible questionnaires
// @Description Public questionnaires for everyone, plus the caller's own; admins see all active ones.
// @Tags questionnaires
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(12)
// @Success 200 {object} dto.Page[dto.QuestionnaireDTO]
// @Router /questionnaires [get]
func (ctrl *QuestionnaireController) List(c *gin.Context) {
	page, perPage := controller.PageParams(c, 12)
	result, err := ctrl.questionnaireSvc.List(middleware.CurrentUser(c), page, perPage)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get a questionnaire with its questions
// @Description Questions come back in display order. Includes response statistics and, for signed-in users, their own completed response if any.
// @Tags questionnaires
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} dto.QuestionnaireDetailDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id} [get]
func (ctrl *QuestionnaireController) Get(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.questionnaireSvc.Get(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update godoc
// @Summary Update a questionnaire
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param questionnaire body dto.QuestionnaireUpdateRequest true "Updated data"
// @Success 200 {object} dto.QuestionnaireDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id} [put]
func (ctrl *QuestionnaireController) Update(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionnaireUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.questionnaireSvc.Update(middleware.CurrentUser(c), id, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateSettings godoc
// @Summary Update questionnaire settings
// @Description Toggle active, public, anonymous-response and multiple-response flags.
// @Tags questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param settings body dto.QuestionnaireSettingsRequest true "Settings"
// @Success 200 {object} dto.QuestionnaireDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/settings [put]
func (ctrl *QuestionnaireController) UpdateSettings(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionnaireSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.questionnaireSvc.UpdateSettings(middleware.CurrentUser(c), id, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a questionnaire
// @Description Removes the questionnaire together with its questions, responses and answers.
// @Tags questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id} [delete]
func (ctrl *QuestionnaireController) Delete(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questionnaireSvc.Delete(middleware.CurrentUser(c), id); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListQuestions godoc
// @Summary List a questionnaire's questions
// @Tags questions
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Success 200 {array} dto.QuestionDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/questions [get]
func (ctrl *QuestionnaireController) ListQuestions(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.questionSvc.List(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateQuestion godoc
// @Summary Add a question
// @Description Appends the question at the end of the display order. Choice questions need at least one option.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param question body dto.QuestionCreateRequest true "Question data"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/questions [post]
func (ctrl *QuestionnaireController) CreateQuestion(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.questionSvc.Create(middleware.CurrentUser(c), id, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateRequest true "Updated data"
// @Success 200 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /questions/{id} [put]
func (ctrl *QuestionnaireController) UpdateQuestion(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	result, err := ctrl.questionSvc.Update(middleware.CurrentUser(c), id, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Also removes any answers recorded against it.
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (ctrl *QuestionnaireController) DeleteQuestion(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.questionSvc.Delete(middleware.CurrentUser(c), id); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderQuestions godoc
// @Summary Reorder questions
// @Description Applies the given question ID sequence as the new display order in a single transaction. IDs from other questionnaires are ignored.
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Param order body dto.QuestionReorderRequest true "Question IDs in the desired order"
// @Success 200 {object} map[string]string
// @Failure 403 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/questions/reorder [put]
func (ctrl *QuestionnaireController) ReorderQuestions(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.questionSvc.Reorder(middleware.CurrentUser(c), id, req); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Questions reordered"})
}

// SiteStats godoc
// @Summary Public site statistics
// @Description Counts of public questionnaires, completed responses and active users, plus recent public questionnaires.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.SiteStatsDTO
// @Router /stats [get]
func (ctrl *QuestionnaireController) SiteStats(c *gin.Context) {
	result, err := ctrl.questionnaireSvc.SiteStats()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
