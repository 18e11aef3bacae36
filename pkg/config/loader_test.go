package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	for _, key := range []string{"PORT", "IP", "WORK_DIR", "FFMPEG_PATH", "MAX_OUTPUT_BYTES", "FETCH_TIMEOUT", "TEST_MINIO_PASSWORD"} {
		t.Setenv(key, "")
	}

	t.Run("找不到 YAML 使用預設值", func(t *testing.T) {
		cfg, err := LoadConfig[AudioService]("audio_service", t.TempDir(), Defaults)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.IP)
		assert.Equal(t, "5000", cfg.Port)
		assert.Equal(t, "downloads", cfg.WorkDir)
		assert.Equal(t, int64(10*1024*1024), cfg.MaxOutputBytes)
		assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
		assert.Equal(t, "ffmpeg", cfg.FFmpeg.Path)
		assert.Equal(t, 44100, cfg.FFmpeg.SampleRate)
		assert.False(t, cfg.MinIO.Enabled)
	})

	t.Run("讀取 YAML 並展開環境變數", func(t *testing.T) {
		dir := t.TempDir()
		yaml := []byte(`port: "8090"
max_output_bytes: 2048
fetch_timeout: 5s
ffmpeg:
  bitrate: 64k
minio:
  enabled: true
  password: ${TEST_MINIO_PASSWORD}
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "audio_service.yaml"), yaml, 0644))
		t.Setenv("TEST_MINIO_PASSWORD", "s3cret")

		cfg, err := LoadConfig[AudioService]("audio_service", dir, Defaults)
		require.NoError(t, err)

		assert.Equal(t, "8090", cfg.Port)
		assert.Equal(t, int64(2048), cfg.MaxOutputBytes)
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
		assert.Equal(t, "64k", cfg.FFmpeg.Bitrate)
		assert.Equal(t, "ffmpeg", cfg.FFmpeg.Path)
		assert.True(t, cfg.MinIO.Enabled)
		assert.Equal(t, "s3cret", cfg.MinIO.Password)
	})

	t.Run("環境變數覆蓋設定", func(t *testing.T) {
		t.Setenv("PORT", "9999")
		t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")

		cfg, err := LoadConfig[AudioService]("audio_service", t.TempDir(), Defaults)
		require.NoError(t, err)

		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpeg.Path)
	})

	t.Run("YAML 格式錯誤", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "audio_service.yaml"), []byte("port: [unclosed"), 0644))

		_, err := LoadConfig[AudioService]("audio_service", dir, Defaults)
		assert.Error(t, err)
	})
}

func TestGetPath(t *testing.T) {
	_, err := GetPath("definitely-not-here.env", 2)
	assert.Error(t, err)
}
