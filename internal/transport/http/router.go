package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/token"
	"github.com/taskforge/todo-service/internal/transport/http/handler"
	"github.com/taskforge/todo-service/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, userHandler *handler.UserHandler, todoHandler *handler.TodoHandler, tokens *token.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")
	api.GET("", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API"})
	})

	// Public identity routes
	user := api.Group("/user")
	user.POST("/register", userHandler.Register)
	user.POST("/login", userHandler.Login)

	// Protected todo routes
	todos := api.Group("/todos", middleware.Auth(tokens))
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return r
}
