package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/session"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/events"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC *session.UseCase
	ProjectUC *usecase.ProjectUseCase
	TaskUC    *usecase.TaskUseCase
	CommentUC *usecase.CommentUseCase
	MessageUC *usecase.MessageUseCase
	UserUC    *usecase.UserUseCase
	Activity  *usecase.ActivityLogger
	Bus       *events.Bus
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; logout también, limpia sesión incondicionalmente)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.SessionUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token con sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.SessionUC))

	protected.Get("/auth/me", authHandler.Me)

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	taskHandler := NewTaskHandler(deps.TaskUC, deps.CommentUC, deps.Activity)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", AdminOnly(), projectHandler.Delete)
	projects.Get("/:id/board", taskHandler.Board)
	projects.Get("/:id/history", taskHandler.ProjectHistory)
	projects.Get("/:id/members", projectHandler.Members)
	projects.Post("/:id/members", AdminOnly(), projectHandler.AddMember)
	projects.Delete("/:id/members/:username", AdminOnly(), projectHandler.RemoveMember)

	// Events (SSE, protegido)
	eventsHandler := NewEventsHandler(deps.Bus)
	projects.Get("/:id/events", eventsHandler.Stream)

	// Tasks (protegido)
	tasks := protected.Group("/tasks")
	tasks.Get("/mine", taskHandler.MyTasks)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Patch("/:id/status", taskHandler.UpdateStatus)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Get("/:id/comments", taskHandler.Comments)
	tasks.Post("/:id/comments", taskHandler.AddComment)
	tasks.Get("/:id/history", taskHandler.History)

	// Messages (protegido)
	messages := protected.Group("/messages")
	messageHandler := NewMessageHandler(deps.MessageUC)
	messages.Get("/", messageHandler.Inbox)
	messages.Post("/", messageHandler.Send)
	messages.Patch("/:id/read", messageHandler.MarkRead)

	// Users (protegido, solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", AdminOnly(), userHandler.List)
}
