package database

import "time"

// MinIOConnection definition minio
type MinIOConnection struct {
	Endpoint string
	User     string
	Password string
	UseSSL   bool

	RetryCount    int
	RetryInterval time.Duration
}
