package services

import (
	"fmt"

	"go.uber.org/zap"
)

// handleError logs err with the action context and returns it wrapped.
func handleError(logger *zap.Logger, msg string, err error, fields ...zap.Field) error {
	logger.Error(msg, append(fields, zap.Error(err))...)
	return fmt.Errorf("%s: %w", msg, err)
}
