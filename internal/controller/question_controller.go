package controller

import (
	"strconv"

	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionReq true "question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// Get godoc
// @Summary Get a question by id
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	question, err := c.QuestionService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionReq true "question payload"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.QuestionService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// List godoc
// @Summary List questions, optionally filtered
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param text query string false "substring match against question text"
// @Param educationalIndicator query string false "exact indicator match"
// @Param professorId query int false "filter by professor"
// @Param isActive query bool false "filter by active flag"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.QuestionFilter{
		Text:        ctx.Query("text"),
		Indicator:   ctx.Query("educationalIndicator"),
		ProfessorID: util.MustParseUint(ctx.Query("professorId")),
	}
	if raw := ctx.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "isActive must be true or false")
			return
		}
		filter.IsActive = &active
	}

	questions, total, err := c.QuestionService.List(filter, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
