package router

import (
	"audio_extract_service/internal/audio/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 註冊路由
// @title Audio Extract Service API
// @version 1.0
// @description Downloads a remote media file and returns its audio track as MP3
// @host localhost:5000
// @BasePath /
func RegisterRoutes(app *fiber.App, audioHandler *handlers.AudioHandler) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	app.Post("/process-video", audioHandler.ProcessVideo)
}
