package app

import (
	"context"
	"fmt"
	"os"

	"audio_extract_service/internal/audio/domain"
	errprocess "audio_extract_service/pkg/err"
	"audio_extract_service/pkg/logger"

	"go.uber.org/zap"
)

// 讓 pipeline test 可替換檔案操作
var (
	createFile = func(name string) (*os.File, error) {
		return os.Create(name)
	}

	statFile = func(name string) (os.FileInfo, error) {
		return os.Stat(name)
	}
)

// ConvertUseCase 對外提供的轉檔服務
type ConvertUseCase interface {
	Run(ctx context.Context, sourceURL, outputDir string, maxSizeBytes int64) (string, error)
}

// Pipeline download → decode/encode → size trim, owning the artifacts of one run
type Pipeline struct {
	fetcher    domain.Fetcher
	transcoder domain.Transcoder
}

// NewPipeline create Pipeline
func NewPipeline(fetcher domain.Fetcher, transcoder domain.Transcoder) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		transcoder: transcoder,
	}
}

// Run converts sourceURL into an mp3 inside outputDir and returns its path.
//
// On error nothing Run created is left in outputDir. On success only the encoded
// output remains and the caller owns it. When the encoded output is larger than
// maxSizeBytes the audio is cut once, proportionally, and re-encoded; the result is
// not measured again. maxSizeBytes <= 0 disables the ceiling.
func (p *Pipeline) Run(ctx context.Context, sourceURL, outputDir string, maxSizeBytes int64) (string, error) {
	raw := domain.NewArtifact(outputDir, domain.RawDownload)
	out := domain.NewArtifact(outputDir, domain.EncodedOutput)
	succeeded := false
	defer func() {
		removeArtifact(raw)
		if !succeeded {
			removeArtifact(out)
		}
	}()

	// 1. 下載來源檔案
	logger.Log.Info("downloading source", zap.String("url", sourceURL), zap.String("dest", raw.Path))
	if err := p.download(ctx, sourceURL, raw); err != nil {
		return "", errprocess.Wrap(domain.ErrFetchFailed, "url[%s] %v", sourceURL, err)
	}

	// 2. 解碼並轉成 mp3
	audio, err := p.transcoder.Decode(ctx, raw.Path)
	if err != nil {
		return "", errprocess.Wrap(domain.ErrTranscodeFailed, "url[%s] %v", sourceURL, err)
	}
	if err := p.transcoder.Encode(ctx, audio, out.Path, domain.FormatMP3); err != nil {
		return "", errprocess.Wrap(domain.ErrTranscodeFailed, "url[%s] %v", sourceURL, err)
	}
	logger.Log.Info("converted to mp3", zap.String("output", out.Path), zap.Int64("duration_ms", audio.DurationMillis()))

	// 3. 原始檔已不再需要
	removeArtifact(raw)

	// 4. 檢查大小
	info, err := statFile(out.Path)
	if err != nil {
		return "", errprocess.Wrap(domain.ErrTranscodeFailed, "url[%s] stat output: %v", sourceURL, err)
	}
	size := info.Size()
	logger.Log.Info("encoded size", zap.Int64("bytes", size), zap.Int64("max_bytes", maxSizeBytes))

	if maxSizeBytes <= 0 || size <= maxSizeBytes {
		succeeded = true
		return out.Path, nil
	}

	// 5. 依比例裁切後重新編碼, 只做一次
	target := domain.TrimDuration(audio.DurationMillis(), size, maxSizeBytes)
	logger.Log.Info("trimming audio",
		zap.Int64("duration_ms", audio.DurationMillis()),
		zap.Int64("target_ms", target),
	)
	trimmed := p.transcoder.Slice(audio, 0, target)
	if err := p.transcoder.Encode(ctx, trimmed, out.Path, domain.FormatMP3); err != nil {
		return "", errprocess.Wrap(domain.ErrTrimFailed, "url[%s] %v", sourceURL, err)
	}

	succeeded = true
	return out.Path, nil
}

// download fetch sourceURL into the raw artifact
func (p *Pipeline) download(ctx context.Context, sourceURL string, raw domain.Artifact) error {
	file, err := createFile(raw.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", raw.Kind, err)
	}

	if err := p.fetcher.Fetch(ctx, sourceURL, file); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("write %s: %w", raw.Kind, err)
	}
	return nil
}

// removeArtifact best effort delete, failures are only logged
func removeArtifact(a domain.Artifact) {
	if err := a.Remove(); err != nil {
		logger.Log.Warn(domain.ErrCleanupFailed.Error(),
			zap.String("kind", string(a.Kind)),
			zap.String("path", a.Path),
			zap.Error(err),
		)
	}
}

var _ ConvertUseCase = (*Pipeline)(nil)
