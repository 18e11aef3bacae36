package domain

import (
	"context"
	"io"
)

// Fetcher retrieves a remote resource into dst, streaming in bounded chunks
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL string, dst io.Writer) error
}

// Transcoder decodes media to PCM, encodes PCM to a compressed format and slices PCM by time
type Transcoder interface {
	Decode(ctx context.Context, filePath string) (AudioBuffer, error)
	Encode(ctx context.Context, buf AudioBuffer, filePath string, format AudioFormat) error
	Slice(buf AudioBuffer, startMillis, endMillis int64) AudioBuffer
}
