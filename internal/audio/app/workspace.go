package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"audio_extract_service/internal/audio/domain"
	errprocess "audio_extract_service/pkg/err"
	"audio_extract_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Workspace per-request scratch directory, root/<request id>
type Workspace struct {
	ID  string
	Dir string

	once sync.Once
	err  error
}

// NewWorkspace create a fresh scratch directory under root
func NewWorkspace(root string) (*Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("建立暫存目錄失敗: %w", err)
	}
	return &Workspace{ID: id, Dir: dir}, nil
}

// Release remove the directory and everything in it. Only the first call does work,
// later calls return the first result. Failures are logged as cleanup failures.
func (w *Workspace) Release() error {
	w.once.Do(func() {
		if err := os.RemoveAll(w.Dir); err != nil {
			w.err = errprocess.Wrap(domain.ErrCleanupFailed, "requestID[%s] remove %s: %v", w.ID, w.Dir, err)
			return
		}
		logger.Log.Debug("workspace released", zap.String("request_id", w.ID), zap.String("dir", w.Dir))
	})
	return w.err
}
