package publishers

import (
	"context"

	"github.com/samvad-hq/trends-proxy/internal/logger"
)

// Publisher sends snapshot events to a downstream sink (SQS, SNS, Pub/Sub, HTTP).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger aliases the shared structured logger.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger { return logger.Ensure(log) }
