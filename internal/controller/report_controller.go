package controller

import (
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"
	"exam_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Generate godoc
// @Summary Generate the performance report for a completed result
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exam result id"
// @Success 201 {object} util.Response{data=model.ExamReport}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/results/{id}/report [post]
func (c *ReportController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.ReportService.Generate(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}

	monitoring.ReportsGenerated.Inc()
	util.Created(ctx, report)
}

// Get godoc
// @Summary Fetch the report for a result
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exam result id"
// @Success 200 {object} util.Response{data=model.ExamReport}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/results/{id}/report [get]
func (c *ReportController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.ReportService.Get(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
