package app

import (
	"trivia_backend/internal/config"
	"trivia_backend/internal/middleware"
	"trivia_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(middleware.RequestID())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		events := api.Group("/events")
		{
			events.GET("", c.event.List)
			events.POST("", c.event.Create)
			events.GET("/:id", c.event.Get)
			events.DELETE("/:id", c.event.Delete)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", c.group.List)
			groups.POST("", c.group.Create)
			groups.GET("/active", c.group.Active)
			groups.GET("/event/:eventId", c.group.ListByEvent)
			groups.GET("/:id", c.group.Get)
			groups.PUT("/:id", c.group.Update)
			groups.DELETE("/:id", c.group.Delete)
		}

		sections := api.Group("/sections")
		{
			sections.GET("", c.section.List)
			sections.POST("", c.section.Create)
			sections.GET("/event/:eventId", c.section.ListByEvent)
			sections.GET("/:id", c.section.Get)
			sections.PUT("/:id", c.section.Update)
			sections.DELETE("/:id", c.section.Delete)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", c.question.List)
			questions.POST("", c.question.Create)
			questions.GET("/section/:sectionId", c.question.ListBySection)
			questions.GET("/event/:eventId", c.question.ListByEvent)
			questions.GET("/:id", c.question.Get)
			questions.PUT("/:id", c.question.Update)
			questions.DELETE("/:id", c.question.Delete)
		}

		users := api.Group("/users")
		{
			users.GET("", c.user.List)
			users.POST("", c.user.Create)
			users.DELETE("", c.user.DeleteAll)
			users.GET("/:nationalId", c.user.Get)
			users.DELETE("/:nationalId", c.user.Delete)
		}

		participations := api.Group("/participations")
		{
			participations.POST("/join", c.participation.Join)
			participations.GET("", c.participation.List)
			participations.GET("/state/:state", c.participation.ListByState)
			participations.GET("/search", c.participation.Search)
			participations.GET("/group/:id", c.participation.ListByGroup)
			participations.DELETE("/:id", c.participation.Delete)

			// Finalizing requires the session token issued on join.
			participations.PUT("/finish", middleware.SessionMiddleware(cfg), c.participation.Finish)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/pending", c.report.Pending)
			reports.GET("/finished", c.report.Finished)
			reports.GET("/ranking", c.report.Ranking)
		}
	}
}
