package controller

import (
	"strconv"

	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Create godoc
// @Summary Create an exam from an ordered question list
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExamReq true "exam payload"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Create(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, exam)
}

// Get godoc
// @Summary Get an exam with its ordered questions
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	exam, questions, err := c.ExamService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"exam":      exam,
		"questions": questions,
	})
}

type ExamStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active archived"`
}

// UpdateStatus godoc
// @Summary Change an exam's lifecycle status
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Param body body ExamStatusRequest true "target status"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Router /api/admin/exams/{id}/status [put]
func (c *ExamController) UpdateStatus(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ExamStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.UpdateStatus(id, model.ExamStatus(req.Status))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, exam)
}

// Delete godoc
// @Summary Delete an exam and its question links
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ExamService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// List godoc
// @Summary List exams, optionally filtered by status
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "draft | active | archived"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	exams, total, err := c.ExamService.List(model.ExamStatus(ctx.Query("status")), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  exams,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ListActive godoc
// @Summary List exams open for taking
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/exams/active [get]
func (c *ExamController) ListActive(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	exams, total, err := c.ExamService.List(model.ExamActive, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  exams,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
