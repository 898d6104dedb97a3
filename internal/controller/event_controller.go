package controller

import (
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body service.EventCreateRequest true "Event"
// @Success 201 {object} util.Response
// @Router /api/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req service.EventCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.CreateEvent(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/events [get]
func (c *EventController) List(ctx *gin.Context) {
	events, err := c.EventService.ListEvents()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} util.Response
// @Router /api/events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	event, err := c.EventService.GetEvent(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, event)
}

// @Summary Delete an event and everything under it
// @Tags events
// @Param id path int true "Event ID"
// @Success 204
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.EventService.DeleteEvent(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
