package controller

import (
	"trivia_backend/internal/model"
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary Attempts still open
// @Tags reports
// @Produce json
// @Param event_id query int false "Only attempts under this event"
// @Param group_id query int false "Only attempts of this group"
// @Success 200 {object} util.Response
// @Router /api/reports/pending [get]
func (c *ReportController) Pending(ctx *gin.Context) {
	c.byState(ctx, model.AttemptPending)
}

// @Summary Attempts already finalized
// @Tags reports
// @Produce json
// @Param event_id query int false "Only attempts under this event"
// @Param group_id query int false "Only attempts of this group"
// @Success 200 {object} util.Response
// @Router /api/reports/finished [get]
func (c *ReportController) Finished(ctx *gin.Context) {
	c.byState(ctx, model.AttemptFinished)
}

func (c *ReportController) byState(ctx *gin.Context, state model.AttemptState) {
	rows, err := c.ReportService.AttemptsByState(
		state,
		util.MustParseUint(ctx.Query("event_id")),
		util.MustParseUint(ctx.Query("group_id")),
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary Leaderboard of finished attempts
// @Description Ordered by correct answers, fastest time breaking ties; rank
// @Description is dense starting at 1.
// @Tags reports
// @Produce json
// @Param group_id query int false "Only attempts of this group"
// @Param attempt_number query int false "Only this attempt number"
// @Success 200 {object} util.Response
// @Router /api/reports/ranking [get]
func (c *ReportController) Ranking(ctx *gin.Context) {
	groupID := util.MustParseUint(ctx.Query("group_id"))
	attemptNumber := int(util.MustParseUint(ctx.Query("attempt_number")))

	entries, err := c.ReportService.Ranking(groupID, attemptNumber)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
