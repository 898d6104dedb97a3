package controller

import (
	"time"

	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
}

func NewGroupController(groupService *service.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body service.GroupCreateRequest true "Group"
// @Success 201 {object} util.Response
// @Router /api/groups [post]
func (c *GroupController) Create(ctx *gin.Context) {
	var req service.GroupCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.GroupService.CreateGroup(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, group)
}

// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param group body service.GroupUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Router /api/groups/{id} [put]
func (c *GroupController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.GroupUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.GroupService.UpdateGroup(id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// @Summary List groups
// @Tags groups
// @Produce json
// @Param event_id query int false "Only groups of this event"
// @Success 200 {object} util.Response
// @Router /api/groups [get]
func (c *GroupController) List(ctx *gin.Context) {
	eventID := util.MustParseUint(ctx.Query("event_id"))
	groups, err := c.GroupService.ListGroups(eventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// @Summary List groups of an event
// @Tags groups
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} util.Response
// @Router /api/groups/event/{eventId} [get]
func (c *GroupController) ListByEvent(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventId")
	if !ok {
		return
	}
	groups, err := c.GroupService.ListGroups(eventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// @Summary List groups whose window is open
// @Tags groups
// @Produce json
// @Param at query string false "RFC3339 instant, defaults to now"
// @Param event_id query int false "Only groups of this event"
// @Success 200 {object} util.Response
// @Router /api/groups/active [get]
func (c *GroupController) Active(ctx *gin.Context) {
	var at *time.Time
	if raw := ctx.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			util.BadRequest(ctx, "at must be an RFC3339 timestamp")
			return
		}
		at = &parsed
	}
	eventID := util.MustParseUint(ctx.Query("event_id"))

	groups, err := c.GroupService.ActiveGroups(at, eventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// @Summary Get a group
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id} [get]
func (c *GroupController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	group, err := c.GroupService.GetGroup(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// @Summary Delete a group and its attempts
// @Tags groups
// @Param id path int true "Group ID"
// @Success 204
// @Router /api/groups/{id} [delete]
func (c *GroupController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.GroupService.DeleteGroup(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
