package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"audio_extract_service/internal/audio/domain"
	"audio_extract_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUseCase 在 outputDir 寫入 payload, 或回傳 err
type stubUseCase struct {
	payload   []byte
	err       error
	outputDir string
}

func (s *stubUseCase) Run(ctx context.Context, sourceURL, outputDir string, maxSizeBytes int64) (string, error) {
	s.outputDir = outputDir
	if s.err != nil {
		return "", s.err
	}
	path := filepath.Join(outputDir, domain.OutputFileName)
	return path, os.WriteFile(path, s.payload, 0644)
}

func TestRunConvert(t *testing.T) {
	logger.SetNewNop()
	workDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "clip.mp3")
	useCase := &stubUseCase{payload: []byte("ID3 converted")}

	n, err := runConvert(context.Background(), useCase, workDir, "https://example.com/clip.mp4", dest, 1024)
	require.NoError(t, err)
	assert.Equal(t, int64(len(useCase.payload)), n)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, useCase.payload, got)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunConvertPipelineError(t *testing.T) {
	logger.SetNewNop()
	workDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "clip.mp3")
	useCase := &stubUseCase{err: fmt.Errorf("%w: HTTP 404 Not Found", domain.ErrFetchFailed)}

	_, err := runConvert(context.Background(), useCase, workDir, "https://example.com/missing.mp4", dest, 1024)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.NoFileExists(t, dest)
	assert.NoDirExists(t, useCase.outputDir)
}

func TestRunConvertBadDestination(t *testing.T) {
	logger.SetNewNop()
	workDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "no-such-dir", "clip.mp3")

	_, err := runConvert(context.Background(), &stubUseCase{payload: []byte("x")}, workDir, "https://example.com/clip.mp4", dest, 0)
	assert.Error(t, err)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
