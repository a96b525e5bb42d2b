package routes

import (
	"github.com/fundbridge/intake-go/internal/api/handlers"
	"github.com/fundbridge/intake-go/internal/api/middleware"
	"github.com/fundbridge/intake-go/internal/application"
	"github.com/fundbridge/intake-go/internal/repository"
	"github.com/fundbridge/intake-go/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.ObjectStore) {
	repos := repository.New(db)
	services := application.New(repos, store)
	h := handlers.New(services)

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		intake := auth.Group("/intake")
		{
			intake.GET("/draft", h.Intake.GetDraft)
			intake.PUT("/draft/fields", h.Intake.SetField)
			intake.PUT("/draft/needs", h.Intake.SetNeeds)
			intake.POST("/draft/documents/:category", h.Intake.UploadDocument)
			intake.DELETE("/draft/documents/:category/:index", h.Intake.RemoveDocument)
			intake.GET("/draft/validation", h.Intake.Validation)
			intake.POST("/submit", h.Intake.Submit)
		}

		apps := auth.Group("/applications")
		{
			apps.GET("/mine", h.Application.Mine)
			apps.GET("", middleware.Reviewer(), h.Application.List)
			apps.GET("/:id", middleware.Reviewer(), h.Application.Get)
			apps.PUT("/:id/status", middleware.Reviewer(), h.Application.UpdateStatus)
			apps.POST("/:id/assessment", middleware.Admin(), h.Application.AttachAssessment)
			apps.GET("/:id/history", middleware.Admin(), h.Application.History)
		}

		stats := auth.Group("/stats")
		{
			stats.GET("/applications", middleware.Reviewer(), h.Application.Summary)
		}

		users := auth.Group("/users")
		{
			users.PUT("/:id/review-permission", middleware.Admin(), h.User.SetReviewPermission)
		}
	}
}
