package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"audio_extract_service/internal/audio/domain"
	"audio_extract_service/pkg/logger"

	"go.uber.org/zap"
)

// CommandRunner run an external command, feeding stdin and returning stdout
type CommandRunner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner os/exec based CommandRunner
type ExecCommandRunner struct{}

// Run implements CommandRunner, stderr is folded into the returned error
func (r *ExecCommandRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%v, output: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// FFmpegTranscoder implements domain.Transcoder with the ffmpeg binary
type FFmpegTranscoder struct {
	ffmpegPath string
	bitrate    string
	sampleRate int
	channels   int
	runner     CommandRunner
}

// TranscoderOption functional option of FFmpegTranscoder
type TranscoderOption func(*FFmpegTranscoder)

// WithFFmpegPath custom ffmpeg executable path
func WithFFmpegPath(path string) TranscoderOption {
	return func(t *FFmpegTranscoder) {
		if path != "" {
			t.ffmpegPath = path
		}
	}
}

// WithBitrate mp3 bitrate, e.g. 128k
func WithBitrate(bitrate string) TranscoderOption {
	return func(t *FFmpegTranscoder) {
		if bitrate != "" {
			t.bitrate = bitrate
		}
	}
}

// WithPCMLayout sample rate and channel count of decoded audio
func WithPCMLayout(sampleRate, channels int) TranscoderOption {
	return func(t *FFmpegTranscoder) {
		if sampleRate > 0 {
			t.sampleRate = sampleRate
		}
		if channels > 0 {
			t.channels = channels
		}
	}
}

// WithCommandRunner custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) TranscoderOption {
	return func(t *FFmpegTranscoder) {
		t.runner = runner
	}
}

// NewFFmpegTranscoder create FFmpegTranscoder
func NewFFmpegTranscoder(opts ...TranscoderOption) *FFmpegTranscoder {
	t := &FFmpegTranscoder{
		ffmpegPath: "ffmpeg",
		bitrate:    "128k",
		sampleRate: 44100,
		channels:   2,
		runner:     &ExecCommandRunner{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Decode decode the audio stream of filePath into s16le PCM
func (t *FFmpegTranscoder) Decode(ctx context.Context, filePath string) (domain.AudioBuffer, error) {
	cmdArgs := []string{
		"-v", "error",
		"-i", filePath,
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(t.sampleRate),
		"-ac", strconv.Itoa(t.channels),
		"pipe:1",
	}
	logger.Log.Debug("ffmpeg decode", zap.Strings("args", cmdArgs))

	pcm, err := t.runner.Run(ctx, nil, t.ffmpegPath, cmdArgs...)
	if err != nil {
		return domain.AudioBuffer{}, fmt.Errorf("FFmpeg decode 錯誤: %w", err)
	}

	buf := domain.AudioBuffer{PCM: pcm, SampleRate: t.sampleRate, Channels: t.channels}
	if buf.Frames() == 0 {
		return domain.AudioBuffer{}, errors.New("FFmpeg decode 錯誤: no audio samples in source")
	}
	return buf, nil
}

// Encode encode buf to filePath, overwriting it
func (t *FFmpegTranscoder) Encode(ctx context.Context, buf domain.AudioBuffer, filePath string, format domain.AudioFormat) error {
	if format != domain.FormatMP3 {
		return fmt.Errorf("unsupported format %q", format)
	}
	cmdArgs := []string{
		"-v", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(buf.SampleRate),
		"-ac", strconv.Itoa(buf.Channels),
		"-i", "pipe:0",
		"-codec:a", "libmp3lame",
		"-b:a", t.bitrate,
		"-f", string(format),
		"-y",
		filePath,
	}
	logger.Log.Debug("ffmpeg encode", zap.Strings("args", cmdArgs), zap.Int64("duration_ms", buf.DurationMillis()))

	if _, err := t.runner.Run(ctx, bytes.NewReader(buf.PCM), t.ffmpegPath, cmdArgs...); err != nil {
		return fmt.Errorf("FFmpeg encode 錯誤: %w", err)
	}
	return nil
}

// Slice return the frames of buf within [startMillis, endMillis), sharing the backing array
func (t *FFmpegTranscoder) Slice(buf domain.AudioBuffer, startMillis, endMillis int64) domain.AudioBuffer {
	frames := buf.Frames()
	toFrame := func(ms int64) int64 {
		f := ms * int64(buf.SampleRate) / 1000
		if f < 0 {
			return 0
		}
		if f > frames {
			return frames
		}
		return f
	}

	start, end := toFrame(startMillis), toFrame(endMillis)
	if end < start {
		end = start
	}
	size := int64(buf.FrameSize())
	return domain.AudioBuffer{
		PCM:        buf.PCM[start*size : end*size],
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
	}
}

// VerifyInstalled checks that ffmpeg is available
func (t *FFmpegTranscoder) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Run(ctx, nil, t.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

var _ domain.Transcoder = (*FFmpegTranscoder)(nil)
