package controller

import (
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary Create a question with its options
// @Tags questions
// @Accept json
// @Produce json
// @Param question body service.QuestionCreateRequest true "Question"
// @Success 201 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary Rewrite a question, replacing its options
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body service.QuestionUpdateRequest true "Question"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.UpdateQuestion(id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary List questions
// @Tags questions
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	questions, err := c.QuestionService.ListQuestions(0, 0)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary List questions of a section
// @Tags questions
// @Produce json
// @Param sectionId path int true "Section ID"
// @Success 200 {object} util.Response
// @Router /api/questions/section/{sectionId} [get]
func (c *QuestionController) ListBySection(ctx *gin.Context) {
	sectionID, ok := pathID(ctx, "sectionId")
	if !ok {
		return
	}
	questions, err := c.QuestionService.ListQuestions(0, sectionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary List questions of an event across its sections
// @Tags questions
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} util.Response
// @Router /api/questions/event/{eventId} [get]
func (c *QuestionController) ListByEvent(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventId")
	if !ok {
		return
	}
	questions, err := c.QuestionService.ListQuestions(eventID, 0)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	question, err := c.QuestionService.GetQuestion(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Delete a question and its options
// @Tags questions
// @Param id path int true "Question ID"
// @Success 204
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuestionService.DeleteQuestion(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
