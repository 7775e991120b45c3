package api

import "github.com/okian/echochamber/pkg/logger"

// defaultMaxBatchSize bounds POST /api/analyze-batch when no option is given.
const defaultMaxBatchSize = 1000

type options struct {
	maxBatchSize int
}

// Option configures a Server.
type Option func(*Server, *options)

// WithMaxBatchSize caps the number of sequences accepted per batch request.
func WithMaxBatchSize(n int) Option {
	return func(_ *Server, o *options) {
		if n > 0 {
			o.maxBatchSize = n
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins. Defaults to "*".
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server, _ *options) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets a custom logger for request logging and handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server, _ *options) {
		if l != nil {
			s.logger = l
		}
	}
}
