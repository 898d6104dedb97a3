package controller

import (
	"trivia_backend/internal/service"
	"trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary Register a participant
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.UserCreateRequest true "User"
// @Success 201 {object} util.Response
// @Router /api/users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req service.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateUser(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// @Summary List participants
// @Tags users
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// @Summary Look up a participant by national ID
// @Tags users
// @Produce json
// @Param nationalId path string true "National ID"
// @Success 200 {object} util.Response
// @Router /api/users/{nationalId} [get]
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.UserService.GetByNationalID(ctx.Param("nationalId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary Delete a participant and their attempts
// @Tags users
// @Param nationalId path string true "National ID"
// @Success 204
// @Router /api/users/{nationalId} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	if err := c.UserService.DeleteUser(ctx.Param("nationalId")); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary Delete every participant
// @Tags users
// @Success 204
// @Router /api/users [delete]
func (c *UserController) DeleteAll(ctx *gin.Context) {
	if err := c.UserService.DeleteAllUsers(); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
