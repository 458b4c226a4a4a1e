package controller

import (
	"strconv"

	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfessorController struct {
	ProfessorService *service.ProfessorService
}

func NewProfessorController(professorService *service.ProfessorService) *ProfessorController {
	return &ProfessorController{ProfessorService: professorService}
}

// Create godoc
// @Summary Create a professor
// @Tags professors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProfessorReq true "professor payload"
// @Success 201 {object} util.Response{data=model.Professor}
// @Failure 409 {object} util.Response
// @Router /api/admin/professors [post]
func (c *ProfessorController) Create(ctx *gin.Context) {
	var req service.ProfessorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	professor, err := c.ProfessorService.Create(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, professor)
}

// Get godoc
// @Summary Get a professor by id
// @Tags professors
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "professor id"
// @Success 200 {object} util.Response{data=model.Professor}
// @Failure 404 {object} util.Response
// @Router /api/admin/professors/{id} [get]
func (c *ProfessorController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	professor, err := c.ProfessorService.Get(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, professor)
}

// Update godoc
// @Summary Update a professor
// @Tags professors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "professor id"
// @Param body body service.ProfessorReq true "professor payload"
// @Success 200 {object} util.Response{data=model.Professor}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/professors/{id} [put]
func (c *ProfessorController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.ProfessorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	professor, err := c.ProfessorService.Update(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, professor)
}

// Delete godoc
// @Summary Delete a professor
// @Tags professors
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "professor id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/professors/{id} [delete]
func (c *ProfessorController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.ProfessorService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// List godoc
// @Summary List professors
// @Tags professors
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/professors [get]
func (c *ProfessorController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	professors, total, err := c.ProfessorService.List(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  professors,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
