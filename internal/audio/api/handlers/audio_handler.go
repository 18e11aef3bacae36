package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"audio_extract_service/internal/audio/app"
	"audio_extract_service/internal/audio/domain"
	errprocess "audio_extract_service/pkg/err"
	"audio_extract_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AudioHandler audio extract http handler
type AudioHandler struct {
	UseCase        app.ConvertUseCase
	WorkDir        string
	MaxOutputBytes int64
	Timeout        time.Duration
}

// NewAudioHandler create audio handler
func NewAudioHandler(useCase app.ConvertUseCase, workDir string, maxOutputBytes int64, timeout time.Duration) *AudioHandler {
	return &AudioHandler{
		UseCase:        useCase,
		WorkDir:        workDir,
		MaxOutputBytes: maxOutputBytes,
		Timeout:        timeout,
	}
}

// ProcessVideo godoc
// @Summary Extract the audio track of a remote media file
// @Description Downloads video_url, converts its audio to MP3 and trims it to the configured size ceiling.
// @Tags Audio
// @Accept json
// @Produce audio/mpeg
// @Param request body domain.ConversionRequest true "Source media"
// @Success 200 {file} file "output_audio.mp3"
// @Failure 400 {object} domain.ErrorRes "Bad Request"
// @Failure 500 {object} domain.ErrorRes "Internal Server Error"
// @Router /process-video [post]
func (h *AudioHandler) ProcessVideo(c *fiber.Ctx) error {
	// 1. 檢查 request
	req, err := parseConversionRequest(c)
	if err != nil {
		logger.Log.Warn("invalid request", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(domain.ErrorRes{Error: err.Error()})
	}

	// 2. 每個 request 一個獨立的暫存目錄
	ws, err := app.NewWorkspace(h.WorkDir)
	if err != nil {
		logger.Log.Errorf("create workspace failed", err)
		return c.Status(http.StatusInternalServerError).JSON(domain.ErrorRes{Error: err.Error()})
	}
	logger.Log.Info("processing video", zap.String("request_id", ws.ID), zap.String("url", req.VideoURL))

	ctx := c.UserContext()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	// 3. 下載 / 轉檔 / 裁切
	outputPath, err := h.UseCase.Run(ctx, req.VideoURL, ws.Dir, h.MaxOutputBytes)
	if err != nil {
		ws.Release()
		return c.Status(errorStatus(err)).JSON(domain.ErrorRes{Error: err.Error()})
	}

	// 4. 回傳檔案, 傳送完畢 (或連線中斷) 後由 Close 清除暫存目錄
	file, err := os.Open(outputPath)
	if err != nil {
		ws.Release()
		return c.Status(http.StatusInternalServerError).JSON(domain.ErrorRes{Error: err.Error()})
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		ws.Release()
		return c.Status(http.StatusInternalServerError).JSON(domain.ErrorRes{Error: err.Error()})
	}

	logger.Log.Info("sending file", zap.String("request_id", ws.ID), zap.Int64("bytes", info.Size()))
	c.Attachment(domain.OutputFileName)
	c.Set(fiber.HeaderContentType, domain.OutputMimeType)
	return c.SendStream(&releasingFile{File: file, ws: ws}, int(info.Size()))
}

// parseConversionRequest validate content type and body, returns ErrInvalidRequest kinds
func parseConversionRequest(c *fiber.Ctx) (domain.ConversionRequest, error) {
	var req domain.ConversionRequest

	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return req, errprocess.Wrap(domain.ErrInvalidRequest, "Content-Type must be application/json")
	}

	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, errprocess.Wrap(domain.ErrInvalidRequest, "body must be a JSON object with a video_url string")
	}

	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if req.VideoURL == "" {
		return req, errprocess.Wrap(domain.ErrInvalidRequest, "video_url is required")
	}
	return req, nil
}

// errorStatus map error kinds to http status
func errorStatus(err error) int {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// releasingFile release the workspace once the response body stream is closed
type releasingFile struct {
	*os.File
	ws *app.Workspace
}

// Close close the file then remove the workspace, cleanup errors are only logged
func (f *releasingFile) Close() error {
	err := f.File.Close()
	if releaseErr := f.ws.Release(); releaseErr == nil {
		logger.Log.Info("cleaned up workspace", zap.String("request_id", f.ws.ID))
	}
	return err
}
