package controller

import (
	"errors"
	"exam_admin_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps the service sentinel errors onto the response envelope.
// Anything unmapped is an internal failure: logged in full, surfaced as a
// stable generic message.
func respondError(ctx *gin.Context, err error) {
	var ve *util.ValidationError
	if errors.As(err, &ve) {
		util.BadRequest(ctx, ve.Msg)
		return
	}

	switch {
	case errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrProfessorNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrResultNotFound),
		errors.Is(err, util.ErrReportNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrExamAlreadyCompleted),
		errors.Is(err, util.ErrAlreadyAnswered),
		errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, util.ErrReportExists),
		errors.Is(err, util.ErrProfessorExists),
		errors.Is(err, util.ErrProfessorReferenced),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrExamNotActive),
		errors.Is(err, util.ErrResultNotCompleted):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Error(ctx, http.StatusForbidden, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
