package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audio_extract_service/internal/audio/domain"
	"audio_extract_service/pkg/database"
)

// chunkSize 串流下載時每次寫入的大小
const chunkSize = 32 * 1024

// errTooLarge source exceeded the download cap
var errTooLarge = errors.New("source exceeds download size limit")

// HTTPFetcher fetch http/https sources
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher create HTTPFetcher, maxBytes <= 0 disables the size cap
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch stream sourceURL into dst, non-2xx statuses are errors and their body is never written
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return fmt.Errorf("%w: %d bytes", errTooLarge, resp.ContentLength)
	}

	return copyLimited(dst, resp.Body, f.maxBytes)
}

// copyLimited copy src into dst in chunkSize pieces, failing once more than maxBytes arrive
func copyLimited(dst io.Writer, src io.Reader, maxBytes int64) error {
	buf := make([]byte, chunkSize)
	if maxBytes <= 0 {
		if _, err := io.CopyBuffer(dst, src, buf); err != nil {
			return fmt.Errorf("copy error: %w", err)
		}
		return nil
	}

	lr := &io.LimitedReader{R: src, N: maxBytes + 1}
	if _, err := io.CopyBuffer(dst, lr, buf); err != nil {
		return fmt.Errorf("copy error: %w", err)
	}
	if lr.N <= 0 {
		return errTooLarge
	}
	return nil
}

// ObjectFetcher fetch s3://bucket/object sources from MinIO
type ObjectFetcher struct {
	store    database.MinIOClientRepo
	maxBytes int64
}

// NewObjectFetcher create ObjectFetcher
func NewObjectFetcher(store database.MinIOClientRepo, maxBytes int64) *ObjectFetcher {
	return &ObjectFetcher{store: store, maxBytes: maxBytes}
}

// Fetch stream the object named by sourceURL into dst
func (f *ObjectFetcher) Fetch(ctx context.Context, sourceURL string, dst io.Writer) error {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	bucket, object := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || object == "" {
		return fmt.Errorf("object url must look like s3://bucket/object, got %q", sourceURL)
	}

	w := dst
	var lw *limitWriter
	if f.maxBytes > 0 {
		lw = &limitWriter{w: dst, remaining: f.maxBytes}
		w = lw
	}

	if _, err := f.store.StreamObject(ctx, bucket, object, w); err != nil {
		if lw != nil && lw.exceeded {
			return errTooLarge
		}
		return err
	}
	return nil
}

// limitWriter fail writes once remaining is exhausted
type limitWriter struct {
	w         io.Writer
	remaining int64
	exceeded  bool
}

func (l *limitWriter) Write(p []byte) (int, error) {
	if int64(len(p)) > l.remaining {
		l.exceeded = true
		return 0, errTooLarge
	}
	n, err := l.w.Write(p)
	l.remaining -= int64(n)
	return n, err
}

// SchemeFetcher dispatch to a Fetcher by URL scheme
type SchemeFetcher struct {
	fetchers map[string]domain.Fetcher
}

// NewSchemeFetcher create SchemeFetcher, http and https share the given HTTP fetcher
func NewSchemeFetcher(httpFetcher domain.Fetcher) *SchemeFetcher {
	return &SchemeFetcher{
		fetchers: map[string]domain.Fetcher{
			"http":  httpFetcher,
			"https": httpFetcher,
		},
	}
}

// Register add or replace the fetcher of scheme
func (s *SchemeFetcher) Register(scheme string, f domain.Fetcher) {
	s.fetchers[strings.ToLower(scheme)] = f
}

// Fetch implements domain.Fetcher
func (s *SchemeFetcher) Fetch(ctx context.Context, sourceURL string, dst io.Writer) error {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	f, ok := s.fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return f.Fetch(ctx, sourceURL, dst)
}

var (
	_ domain.Fetcher = (*HTTPFetcher)(nil)
	_ domain.Fetcher = (*ObjectFetcher)(nil)
	_ domain.Fetcher = (*SchemeFetcher)(nil)
)
