package controller

import (
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	StatisticsService *service.StatisticsService
}

func NewStatisticsController(statisticsService *service.StatisticsService) *StatisticsController {
	return &StatisticsController{StatisticsService: statisticsService}
}

// MyStats godoc
// @Summary Aggregated report stats for the caller
// @Tags statistics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ReportStats}
// @Router /api/stats/my [get]
func (c *StatisticsController) MyStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatisticsService.MyReportStats(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// AdminStatistics godoc
// @Summary Platform-wide statistics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AdminStatistics}
// @Router /api/admin/statistics [get]
func (c *StatisticsController) AdminStatistics(ctx *gin.Context) {
	stats, err := c.StatisticsService.AdminStatistics(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// StudentReport godoc
// @Summary Full history for one student
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response{data=model.StudentReport}
// @Failure 404 {object} util.Response
// @Router /api/admin/students/{id}/report [get]
func (c *StatisticsController) StudentReport(ctx *gin.Context) {
	report, err := c.StatisticsService.StudentReport(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, report)
}
