// Package resilience provides fault tolerance for external service calls.
package resilience

import (
	"time"

	"github.com/sony/gobreaker"

	"assistant_server/pkg/logger"
)

// NewBreaker creates a circuit breaker tuned for generative-service calls.
// Trips after 5 consecutive failures or a 60% failure rate over at least
// 10 requests; stays open for 30s before probing.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return gobreaker.NewCircuitBreaker(settings)
}
