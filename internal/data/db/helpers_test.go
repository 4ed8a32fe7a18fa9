package db

import (
	"testing"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

func nopLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.Nop()
}
