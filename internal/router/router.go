package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/auth"
	"github.com/devnotex/devnotex/internal/handlers"
	"github.com/devnotex/devnotex/internal/membership"
	"github.com/devnotex/devnotex/internal/middleware"
	"github.com/devnotex/devnotex/internal/services"
)

// New wires the full API onto a gin engine. Everything hangs off the injected
// DB handle, token manager and CORS allowlist; there is no package-level state.
func New(db *gorm.DB, tokens *auth.TokenManager, origins []string) *gin.Engine {
	members := membership.NewAuthority(db)

	projectService := services.NewProjectService(db, members)

	authHandler := handlers.NewAuthHandler(services.NewIdentityService(db), tokens)
	projectHandler := handlers.NewProjectHandler(projectService)
	memberHandler := handlers.NewMemberHandler(projectService)
	noteHandler := handlers.NewNoteHandler(services.NewNoteService(db, members))
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(db, members))
	documentHandler := handlers.NewDocumentHandler(services.NewDocumentService(db, members))

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.Auth(tokens, db), authHandler.Me)
		}

		projects := api.Group("/projects", middleware.Auth(tokens, db))
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:project_id", projectHandler.Get)
			projects.PUT("/:project_id", projectHandler.Update)
			projects.DELETE("/:project_id", projectHandler.Delete)
			projects.GET("/:project_id/stats", projectHandler.Stats)

			projects.GET("/:project_id/members", memberHandler.List)
			projects.POST("/:project_id/members", memberHandler.Add)
			projects.DELETE("/:project_id/members/:member_id", memberHandler.Remove)

			projects.GET("/:project_id/notes", noteHandler.List)
			projects.POST("/:project_id/notes", noteHandler.Create)
			projects.GET("/:project_id/notes/:note_id", noteHandler.Get)
			projects.PUT("/:project_id/notes/:note_id", noteHandler.Update)
			projects.DELETE("/:project_id/notes/:note_id", noteHandler.Delete)

			projects.GET("/:project_id/tasks", taskHandler.List)
			projects.POST("/:project_id/tasks", taskHandler.Create)
			projects.GET("/:project_id/tasks/:task_id", taskHandler.Get)
			projects.PUT("/:project_id/tasks/:task_id", taskHandler.Update)
			projects.DELETE("/:project_id/tasks/:task_id", taskHandler.Delete)

			projects.GET("/:project_id/documents", documentHandler.List)
			projects.POST("/:project_id/documents", documentHandler.Create)
			projects.GET("/:project_id/documents/:doc_id", documentHandler.Get)
			projects.PUT("/:project_id/documents/:doc_id", documentHandler.Update)
			projects.DELETE("/:project_id/documents/:doc_id", documentHandler.Delete)
		}
	}

	return r
}
