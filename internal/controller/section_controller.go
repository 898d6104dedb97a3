package controller

import (
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SectionController struct {
	SectionService *service.SectionService
}

func NewSectionController(sectionService *service.SectionService) *SectionController {
	return &SectionController{SectionService: sectionService}
}

// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Param section body service.SectionCreateRequest true "Section"
// @Success 201 {object} util.Response
// @Router /api/sections [post]
func (c *SectionController) Create(ctx *gin.Context) {
	var req service.SectionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.SectionService.CreateSection(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// @Summary Rename a section
// @Tags sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param section body service.SectionUpdateRequest true "New name"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [put]
func (c *SectionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.SectionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.SectionService.UpdateSection(id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary List sections
// @Tags sections
// @Produce json
// @Param event_id query int false "Only sections of this event"
// @Success 200 {object} util.Response
// @Router /api/sections [get]
func (c *SectionController) List(ctx *gin.Context) {
	eventID := util.MustParseUint(ctx.Query("event_id"))
	sections, err := c.SectionService.ListSections(eventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// @Summary List sections of an event
// @Tags sections
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} util.Response
// @Router /api/sections/event/{eventId} [get]
func (c *SectionController) ListByEvent(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventId")
	if !ok {
		return
	}
	sections, err := c.SectionService.ListSections(eventID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// @Summary Get a section
// @Tags sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [get]
func (c *SectionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	section, err := c.SectionService.GetSection(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary Delete a section and its questions
// @Tags sections
// @Param id path int true "Section ID"
// @Success 204
// @Router /api/sections/{id} [delete]
func (c *SectionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.SectionService.DeleteSection(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
