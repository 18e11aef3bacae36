package config

import "time"

// AudioService definition audio_service YAML structure
type AudioService struct {
	IP      string `mapstructure:"ip"`
	Port    string `mapstructure:"port"`
	WorkDir string `mapstructure:"work_dir"`
	Pprof   bool   `mapstructure:"pprof"`

	MaxOutputBytes   int64         `mapstructure:"max_output_bytes"`
	MaxDownloadBytes int64         `mapstructure:"max_download_bytes"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	PipelineTimeout  time.Duration `mapstructure:"pipeline_timeout"`

	FFmpeg FFmpegConfig `mapstructure:"ffmpeg"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
}

// FFmpegConfig definition ffmpeg setting
type FFmpegConfig struct {
	Path       string `mapstructure:"path"`
	Bitrate    string `mapstructure:"bitrate"`
	SampleRate int    `mapstructure:"sample_rate"`
	Channels   int    `mapstructure:"channels"`
}

// MinIOConfig definition object storage source setting
type MinIOConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Endpoint      string `mapstructure:"endpoint"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryInterval int    `mapstructure:"retry_interval"`
}

// Defaults audio_service default values, keyed the same way as the YAML file
var Defaults = map[string]interface{}{
	"ip":                 "0.0.0.0",
	"port":               "5000",
	"work_dir":           "downloads",
	"pprof":              false,
	"max_output_bytes":   int64(10 * 1024 * 1024),
	"max_download_bytes": int64(1024 * 1024 * 1024),
	"fetch_timeout":      60 * time.Second,
	"pipeline_timeout":   10 * time.Minute,

	"ffmpeg.path":        "ffmpeg",
	"ffmpeg.bitrate":     "128k",
	"ffmpeg.sample_rate": 44100,
	"ffmpeg.channels":    2,

	"minio.enabled":        false,
	"minio.endpoint":       "",
	"minio.user":           "",
	"minio.password":       "",
	"minio.use_ssl":        false,
	"minio.retry_count":    3,
	"minio.retry_interval": 2,
}
