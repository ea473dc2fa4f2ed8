package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger: production JSON by default, development
// console output when LOG_MODE=development.
func New() (*zap.Logger, error) {
	if os.Getenv("LOG_MODE") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
