package controller

import (
	"errors"

	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError translates service errors into the response envelope.
// Anything unrecognized is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case util.IsValidation(err):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrEventNotFound),
		errors.Is(err, util.ErrGroupNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, util.ErrEventNameTaken),
		errors.Is(err, util.ErrGroupNameTaken),
		errors.Is(err, util.ErrSectionNameTaken),
		errors.Is(err, util.ErrQuestionTextTaken),
		errors.Is(err, util.ErrNationalIDTaken),
		errors.Is(err, util.ErrAttemptAlreadyFinished):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrGroupNotOpen),
		errors.Is(err, util.ErrAttemptMismatch):
		util.Forbidden(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

// pathID reads a numeric path parameter, answering 400 itself on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(c.Param(name))
	if id == 0 {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
