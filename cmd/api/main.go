package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ehr051/task-manager-api/internal/application/session"
	"github.com/ehr051/task-manager-api/internal/application/usecase"
	"github.com/ehr051/task-manager-api/internal/events"
	"github.com/ehr051/task-manager-api/internal/infrastructure/localstore"
	httpRouter "github.com/ehr051/task-manager-api/internal/interfaces/http"
	"github.com/ehr051/task-manager-api/internal/state"
	"github.com/ehr051/task-manager-api/internal/store"
	"github.com/ehr051/task-manager-api/pkg/config"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// El respaldo local siempre se abre: aunque el remoto esté disponible,
	// es el destino si la decisión del router cae en modo local.
	kv, err := localstore.OpenKV(cfg.Local.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abriendo almacenamiento local")
	}
	defer kv.Close()
	local := localstore.NewStore(kv, log)

	// Decisión única de backend para toda la vida del proceso.
	ctx := context.Background()
	router := store.NewRouter(ctx, cfg, local, log)
	defer router.Close()
	backend := router.Backend()
	remote := router.RemoteAvailable()

	appState := state.New()
	bus := events.NewBus()
	sessions := session.NewStore()

	activity := usecase.NewActivityLogger(backend.Activity(), log)
	sessionUC := session.NewUseCase(backend.Users(), remote, sessions, cfg.JWT, log)
	projectUC := usecase.NewProjectUseCase(backend, remote, appState, bus, log)
	taskUC := usecase.NewTaskUseCase(backend, remote, appState, bus, activity, log)
	commentUC := usecase.NewCommentUseCase(backend, appState, bus, activity, log)
	messageUC := usecase.NewMessageUseCase(backend, appState, log)
	userUC := usecase.NewUserUseCase(backend.Users())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Task Manager API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "remote": remote})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC: sessionUC,
		ProjectUC: projectUC,
		TaskUC:    taskUC,
		CommentUC: commentUC,
		MessageUC: messageUC,
		UserUC:    userUC,
		Activity:  activity,
		Bus:       bus,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
