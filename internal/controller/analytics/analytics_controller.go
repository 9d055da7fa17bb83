package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quillback/internal/controller"
	"github.com/lshigami/Quillback/internal/middleware"
	"github.com/lshigami/Quillback/internal/service"
)

type AnalyticsController struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsController(analyticsSvc service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsSvc: analyticsSvc}
}

// Analytics godoc
// @Summary Questionnaire analytics
// @Description Per-question answer distributions over completed responses, plus completion statistics. Owner and admin only.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} dto.AnalyticsDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/analytics [get]
func (ctrl *AnalyticsController) Analytics(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.analyticsSvc.QuestionnaireAnalytics(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export godoc
// @Summary Export questionnaire data
// @Description Full dump of the questionnaire, its questions and every completed response with answers. Owner and admin only.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} dto.ExportDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questionnaires/{id}/export [get]
func (ctrl *AnalyticsController) Export(c *gin.Context) {
	id, ok := controller.IDParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.analyticsSvc.Export(middleware.CurrentUser(c), id)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
