package controller

import (
	"trivia_backend/internal/config"
	"trivia_backend/internal/model"
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"
	"trivia_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ParticipationController struct {
	ParticipationService *service.ParticipationService
	Config               *config.Config
}

func NewParticipationController(participationService *service.ParticipationService, cfg *config.Config) *ParticipationController {
	return &ParticipationController{ParticipationService: participationService, Config: cfg}
}

type JoinRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalId" binding:"required"`
	GroupID    uint   `json:"groupId" binding:"required"`
	EventID    uint   `json:"eventId"`
}

type JoinResponse struct {
	*service.JoinResult
	Token string `json:"token"`
}

// @Summary Join a group, starting or resuming an attempt
// @Description Decides between start, resume, wait and finished for this
// @Description participant. Every outcome comes with a session token bound to
// @Description the latest attempt.
// @Tags participations
// @Accept json
// @Produce json
// @Param join body JoinRequest true "Participant and group"
// @Success 200 {object} util.Response
// @Router /api/participations/join [post]
func (c *ParticipationController) Join(ctx *gin.Context) {
	var req JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ParticipationService.ResolveOrStartAttempt(req.Name, req.NationalID, req.GroupID, req.EventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	monitoring.JoinActions.WithLabelValues(result.Action).Inc()

	token, err := util.GenerateSessionToken(&util.SessionClaims{
		NationalID: result.NationalID,
		Name:       result.Name,
		GroupID:    result.GroupID,
		EventID:    result.EventID,
		AttemptID:  result.AttemptID,
	}, c.Config.JWT.Secret, c.Config.JWT.ExpireMinutes)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, JoinResponse{JoinResult: result, Token: token})
}

type FinishRequest struct {
	AttemptID uint                      `json:"attemptId" binding:"required"`
	Answers   []service.SubmittedAnswer `json:"answers" binding:"required"`
	Elapsed   string                    `json:"elapsed" binding:"required"`
}

// @Summary Finalize an attempt with its answers and elapsed time
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param finish body FinishRequest true "Answers and elapsed HH:MM:SS"
// @Success 200 {object} util.Response
// @Router /api/participations/finish [put]
func (c *ParticipationController) Finish(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FinishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if session.AttemptID != req.AttemptID {
		respondError(ctx, util.ErrAttemptMismatch)
		return
	}

	attempt, err := c.ParticipationService.FinishAttempt(req.AttemptID, req.Answers, req.Elapsed)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// @Summary List all attempts
// @Tags participations
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/participations [get]
func (c *ParticipationController) List(ctx *gin.Context) {
	attempts, err := c.ParticipationService.ListAttempts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary List attempts in a state
// @Tags participations
// @Produce json
// @Param state path string true "pending or finished"
// @Param event_id query int false "Only attempts under this event"
// @Param group_id query int false "Only attempts of this group"
// @Success 200 {object} util.Response
// @Router /api/participations/state/{state} [get]
func (c *ParticipationController) ListByState(ctx *gin.Context) {
	state := model.AttemptState(ctx.Param("state"))
	eventID := util.MustParseUint(ctx.Query("event_id"))
	groupID := util.MustParseUint(ctx.Query("group_id"))

	attempts, err := c.ParticipationService.ListAttemptsByState(state, eventID, groupID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Search attempts by participant, event or group
// @Tags participations
// @Produce json
// @Param national_id query string false "Participant national ID"
// @Param event_id query int false "Event ID"
// @Param group_id query int false "Group ID"
// @Success 200 {object} util.Response
// @Router /api/participations/search [get]
func (c *ParticipationController) Search(ctx *gin.Context) {
	attempts, err := c.ParticipationService.SearchAttempts(
		ctx.Query("national_id"),
		util.MustParseUint(ctx.Query("event_id")),
		util.MustParseUint(ctx.Query("group_id")),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary List attempts of a group
// @Tags participations
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} util.Response
// @Router /api/participations/group/{id} [get]
func (c *ParticipationController) ListByGroup(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	attempts, err := c.ParticipationService.ListAttemptsByGroup(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Delete an attempt and its result
// @Tags participations
// @Param id path int true "Attempt ID"
// @Success 204
// @Router /api/participations/{id} [delete]
func (c *ParticipationController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ParticipationService.DeleteAttempt(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
