package main

import (
	"audio_extract_service/internal/audio/api/router"

	"github.com/gofiber/fiber/v2"
)

// 此程式只用於 init swagger, 服務入口在 cmd/audio_service
// swag init -g main.go -o ./cmd/audio_service/docs
func main() {
	app := fiber.New()

	// 注册路由
	router.RegisterRoutes(app, nil)
}
