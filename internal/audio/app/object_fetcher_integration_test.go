//go:build integration

package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"audio_extract_service/pkg/database"
	"audio_extract_service/pkg/logger"
	testtool "audio_extract_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
	minioBucket   = "source-bucket"
)

// go test -tags integration ./internal/audio/app/...
func TestObjectFetcherIntegration(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	// **啟動 MinIO**
	minioContainer, minioHost, minioPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image: "minio/minio:latest",
		Cmd:   []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     minioUser,
			"MINIO_ROOT_PASSWORD": minioPassword,
		},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { minioContainer.Terminate(ctx) })

	// **初始化 MinIO**
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%s", minioHost, minioPort),
		User:          minioUser,
		Password:      minioPassword,
		RetryCount:    5,
		RetryInterval: 2,
	})
	require.NoError(t, err)
	require.NoError(t, minioClient.EnsureBucket(ctx, minioBucket))

	// **上傳來源檔**
	payload := bytes.Repeat([]byte("media-bytes "), 10000)
	local := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(local, payload, 0644))
	require.NoError(t, minioClient.UploadFile(ctx, minioBucket, "videos/clip.mp4", local, "video/mp4"))

	t.Run("下載完整物件", func(t *testing.T) {
		var buf bytes.Buffer
		fetcher := NewSchemeFetcher(NewHTTPFetcher(0, 0))
		fetcher.Register("s3", NewObjectFetcher(minioClient, 0))

		require.NoError(t, fetcher.Fetch(ctx, "s3://"+minioBucket+"/videos/clip.mp4", &buf))
		assert.Equal(t, payload, buf.Bytes())
	})

	t.Run("超過下載上限", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewObjectFetcher(minioClient, 1024).Fetch(ctx, "s3://"+minioBucket+"/videos/clip.mp4", &buf)
		assert.ErrorIs(t, err, errTooLarge)
	})

	t.Run("物件不存在", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewObjectFetcher(minioClient, 0).Fetch(ctx, "s3://"+minioBucket+"/videos/missing.mp4", &buf)
		assert.Error(t, err)
	})
}
