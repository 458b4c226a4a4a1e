package controller

import (
	"strconv"

	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"
	"exam_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ExamSessionController struct {
	SessionService *service.ExamSessionService
}

func NewExamSessionController(sessionService *service.ExamSessionService) *ExamSessionController {
	return &ExamSessionController{SessionService: sessionService}
}

// Start godoc
// @Summary Start an exam attempt, or resume the one in progress
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response{data=service.SessionResponse}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/exams/{id}/start [post]
func (c *ExamSessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	examID := util.MustParseUint(ctx.Param("id"))

	session, err := c.SessionService.Start(examID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// GetSession godoc
// @Summary Snapshot of the caller's in-progress attempt
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response{data=service.SessionSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/session [get]
func (c *ExamSessionController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	examID := util.MustParseUint(ctx.Param("id"))

	snapshot, err := c.SessionService.Get(examID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

type AnswerRequest struct {
	QuestionID     uint `json:"questionId" binding:"required"`
	SelectedAnswer *int `json:"selectedAnswer" binding:"required"`
	TimeSpent      int  `json:"timeSpent"`
}

// Answer godoc
// @Summary Record one answer in an in-progress attempt
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exam result id"
// @Param body body AnswerRequest true "answer payload"
// @Success 200 {object} util.Response{data=model.ExamAnswer}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/results/{id}/answers [post]
func (c *ExamSessionController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.SessionService.Answer(ctx.Param("id"), claims.UserID, req.QuestionID, *req.SelectedAnswer, req.TimeSpent)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// Submit godoc
// @Summary Submit an attempt and compute its score
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exam result id"
// @Success 200 {object} util.Response{data=model.ExamResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/results/{id}/submit [post]
func (c *ExamSessionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.SessionService.Submit(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	monitoring.ExamSubmissions.Inc()
	util.Success(ctx, result)
}

// LatestResult godoc
// @Summary The caller's most recently completed result
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ExamResult}
// @Failure 404 {object} util.Response
// @Router /api/results/latest [get]
func (c *ExamSessionController) LatestResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.SessionService.LatestResult(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// MyResults godoc
// @Summary The caller's completed results, newest first
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "max rows, default 20"
// @Success 200 {object} util.Response
// @Router /api/results/my [get]
func (c *ExamSessionController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	results, err := c.SessionService.MyResults(claims.UserID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, results)
}
