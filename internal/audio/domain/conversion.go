package domain

import (
	"errors"
	"math"
	"os"
	"path/filepath"
)

const (
	// OutputFileName suggested filename of the returned audio
	OutputFileName = "output_audio.mp3"
	// OutputMimeType content type of the returned audio
	OutputMimeType = "audio/mpeg"
	// RawFileName scratch name of the downloaded source
	RawFileName = "source.download"
)

// error kinds, match with errors.Is
var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrFetchFailed     = errors.New("fetch failed")
	ErrTranscodeFailed = errors.New("transcode failed")
	ErrTrimFailed      = errors.New("trim failed")
	ErrCleanupFailed   = errors.New("cleanup failed")
)

// ConversionRequest POST /process-video body
type ConversionRequest struct {
	VideoURL string `json:"video_url"`
}

// ErrorRes error response body
type ErrorRes struct {
	Error string `json:"error"`
}

// AudioFormat encode target format
type AudioFormat string

const (
	// FormatMP3 mp3 via libmp3lame
	FormatMP3 AudioFormat = "mp3"
)

// ArtifactKind lifecycle tag of a temporary file
type ArtifactKind string

const (
	// RawDownload the fetched source media
	RawDownload ArtifactKind = "raw-download"
	// EncodedOutput the encoded audio returned to the caller
	EncodedOutput ArtifactKind = "encoded-output"
)

// Artifact temporary file created during one pipeline run
type Artifact struct {
	Path string
	Kind ArtifactKind
}

// NewArtifact place an artifact of kind inside dir
func NewArtifact(dir string, kind ArtifactKind) Artifact {
	name := RawFileName
	if kind == EncodedOutput {
		name = OutputFileName
	}
	return Artifact{Path: filepath.Join(dir, name), Kind: kind}
}

// Remove delete the artifact; a missing file is not an error
func (a Artifact) Remove() error {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Exists report whether the artifact is on disk
func (a Artifact) Exists() bool {
	_, err := os.Stat(a.Path)
	return err == nil
}

// BytesPerSample s16le
const BytesPerSample = 2

// AudioBuffer decoded signed 16-bit little-endian interleaved PCM
type AudioBuffer struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// FrameSize bytes per sample frame across all channels
func (b AudioBuffer) FrameSize() int {
	return b.Channels * BytesPerSample
}

// Frames number of complete sample frames
func (b AudioBuffer) Frames() int64 {
	if b.FrameSize() == 0 {
		return 0
	}
	return int64(len(b.PCM) / b.FrameSize())
}

// DurationMillis playable length in milliseconds
func (b AudioBuffer) DurationMillis() int64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return b.Frames() * 1000 / int64(b.SampleRate)
}

// TrimDuration the duration which keeps an encode of actualSize bytes under ceiling,
// assuming a near constant bitrate: floor(duration * ceiling / actualSize)
func TrimDuration(durationMillis, actualSize, ceiling int64) int64 {
	if actualSize <= ceiling || actualSize <= 0 {
		return durationMillis
	}
	ratio := float64(ceiling) / float64(actualSize)
	return int64(math.Floor(float64(durationMillis) * ratio))
}
