package app

import (
	"context"
	"io"
	"os"
	"testing"

	"audio_extract_service/internal/audio/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher 是 domain.Fetcher 的 Mock
type MockFetcher struct {
	mock.Mock
}

// Fetch 模擬下載, payload 寫入 dst
func (m *MockFetcher) Fetch(ctx context.Context, sourceURL string, dst io.Writer) error {
	args := m.Called(ctx, sourceURL, dst)
	if payload, ok := args.Get(0).([]byte); ok {
		if _, err := dst.Write(payload); err != nil {
			return err
		}
	}
	return args.Error(1)
}

// MockTranscoder 是 domain.Transcoder 的 Mock
type MockTranscoder struct {
	mock.Mock
}

// Decode 模擬解碼
func (m *MockTranscoder) Decode(ctx context.Context, filePath string) (domain.AudioBuffer, error) {
	args := m.Called(ctx, filePath)
	return args.Get(0).(domain.AudioBuffer), args.Error(1)
}

// Encode 模擬編碼
func (m *MockTranscoder) Encode(ctx context.Context, buf domain.AudioBuffer, filePath string, format domain.AudioFormat) error {
	args := m.Called(ctx, buf, filePath, format)
	return args.Error(0)
}

// Slice 模擬裁切
func (m *MockTranscoder) Slice(buf domain.AudioBuffer, startMillis, endMillis int64) domain.AudioBuffer {
	args := m.Called(buf, startMillis, endMillis)
	return args.Get(0).(domain.AudioBuffer)
}

// writeBytes mock.Run helper, writes n bytes to the path argument at index
func writeBytes(t *testing.T, index, n int) func(mock.Arguments) {
	return func(args mock.Arguments) {
		require.NoError(t, os.WriteFile(args.String(index), make([]byte, n), 0644))
	}
}

// listDir names inside dir
func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// pcmBuffer mono 1kHz buffer of the given length, 1 frame per millisecond
func pcmBuffer(durationMillis int) domain.AudioBuffer {
	return domain.AudioBuffer{
		PCM:        make([]byte, durationMillis*domain.BytesPerSample),
		SampleRate: 1000,
		Channels:   1,
	}
}
