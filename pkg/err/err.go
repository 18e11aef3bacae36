package errprocess

import (
	"errors"
	"fmt"

	"audio_extract_service/pkg/logger"
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Wrap log the message and return an error matching kind via errors.Is
func Wrap(kind error, format string, args ...interface{}) error {
	err := fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
	logger.Log.Error(err.Error())
	return err
}
