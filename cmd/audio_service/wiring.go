package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"audio_extract_service/internal/audio/app"
	"audio_extract_service/pkg/config"
	"audio_extract_service/pkg/database"
	"audio_extract_service/pkg/logger"

	"go.uber.org/zap"
)

// newPipeline build fetchers and transcoder from cfg, the work dir is created when missing
func newPipeline(ctx context.Context, cfg config.AudioService) (*app.Pipeline, error) {
	if err := os.MkdirAll(cfg.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("create work dir [%s]: %w", cfg.WorkDir, err)
	}

	// 1. ffmpeg
	transcoder := app.NewFFmpegTranscoder(
		app.WithFFmpegPath(cfg.FFmpeg.Path),
		app.WithBitrate(cfg.FFmpeg.Bitrate),
		app.WithPCMLayout(cfg.FFmpeg.SampleRate, cfg.FFmpeg.Channels),
	)
	if err := transcoder.VerifyInstalled(ctx); err != nil {
		return nil, err
	}

	// 2. http(s) 來源, 有設定時再加上 s3://
	fetcher := app.NewSchemeFetcher(app.NewHTTPFetcher(cfg.FetchTimeout, cfg.MaxDownloadBytes))
	if cfg.MinIO.Enabled {
		minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
			Endpoint:      cfg.MinIO.Endpoint,
			User:          cfg.MinIO.User,
			Password:      cfg.MinIO.Password,
			UseSSL:        cfg.MinIO.UseSSL,
			RetryCount:    cfg.MinIO.RetryCount,
			RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
		})
		if err != nil {
			return nil, fmt.Errorf("connect minio [%s]: %w", cfg.MinIO.Endpoint, err)
		}
		fetcher.Register("s3", app.NewObjectFetcher(minioClient, cfg.MaxDownloadBytes))
		logger.Log.Info("object storage source enabled", zap.String("endpoint", cfg.MinIO.Endpoint))
	}

	return app.NewPipeline(fetcher, transcoder), nil
}
