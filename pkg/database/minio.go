package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClientRepo object storage operations used by the service
type MinIOClientRepo interface {
	StreamObject(ctx context.Context, bucketName, objectName string, dst io.Writer) (int64, error)
}

// MinIOClient definition minio client
type MinIOClient struct {
	Client *minio.Client
}

// NewMinIOConnection create a new minio connection have retry
func NewMinIOConnection(d MinIOConnection) (*MinIOClient, error) {
	var mc *MinIOClient
	var err error

	for i := 1; i <= d.RetryCount; i++ {
		mc, err = NewMinioClient(d.Endpoint, d.User, d.Password, d.UseSSL)
		if err == nil {
			if _, err = mc.Client.ListBuckets(context.Background()); err == nil {
				log.Printf("minIO[%s] 連線成功 (嘗試 %d 次)", d.Endpoint, i)
				return mc, nil
			}
		}

		log.Printf("minIO[%s] 連線失敗 (嘗試 %d/%d): %v", d.Endpoint, i, d.RetryCount, err)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return nil, err
}

// NewMinioClient create a new minio
func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*MinIOClient, error) {
	minioClient, err := minio.New(endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 失敗: %v", err)
	}

	return &MinIOClient{Client: minioClient}, nil
}

// EnsureBucket create bucketName when it does not exist
func (m *MinIOClient) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("檢查 bucket [%s] 失敗: %v", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("建立 bucket [%s] 失敗: %v", bucketName, err)
	}
	log.Printf("Bucket [%s] 建立成功", bucketName)
	return nil
}

// UploadFile minio upload file func
func (m *MinIOClient) UploadFile(ctx context.Context, bucketName, objectName, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("開啟檔案失敗: %v", err)
	}
	defer file.Close()

	_, err = m.Client.PutObject(ctx, bucketName, objectName, file, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// StreamObject copy an object into dst without buffering it in memory
func (m *MinIOClient) StreamObject(ctx context.Context, bucketName, objectName string, dst io.Writer) (int64, error) {
	obj, err := m.Client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("取得物件失敗: %w", err)
	}
	defer obj.Close()

	// GetObject 是 lazy 的，Stat 才會真正發出請求並回報 NoSuchKey
	if _, err := obj.Stat(); err != nil {
		return 0, fmt.Errorf("取得物件資訊失敗: %w", err)
	}

	buf := make([]byte, 32*1024)
	return io.CopyBuffer(dst, obj, buf)
}
