package main

import (
	"audio_extract_service/internal/audio/api/handlers"
	"audio_extract_service/internal/audio/api/router"
	"audio_extract_service/pkg/logger"
	testtool "audio_extract_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		audioHandler := handlers.NewAudioHandler(pipeline, cfg.WorkDir, cfg.MaxOutputBytes, cfg.PipelineTimeout)

		// 创建 Fiber 应用
		r := fiber.New(fiber.Config{
			AppName:               "audio_service",
			DisableStartupMessage: true,
		})
		r.Use(recover.New())
		r.Use(fiber_log.New())

		// 注册路由
		router.RegisterRoutes(r, audioHandler)

		testtool.StartPprof(cfg.Pprof)

		addr := cfg.IP + ":" + cfg.Port
		logger.Log.Info("audio service listening", zap.String("address", addr), zap.String("work_dir", cfg.WorkDir))
		if err := r.Listen(addr); err != nil {
			logger.Log.Error("Server failed to start", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
