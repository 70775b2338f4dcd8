package mintprice

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitwit/mintprice/logger"
	"github.com/vitwit/mintprice/metrics"
)

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = r
	}
}

// WithRegisterer sets where the prometheus recorder registers when metrics
// are enabled in the config and no recorder was given.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.registerer = reg
	}
}

func WithTimeout(t time.Duration) Option {
	return func(s *Service) {
		if t > 0 {
			s.timeout = t
		}
	}
}
