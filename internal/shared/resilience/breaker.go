// Package resilience wraps calls to external services with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig configures a circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state counter reset period
	Timeout          time.Duration // open-state duration before half-open
	FailureThreshold uint32        // consecutive failures that trip the breaker
	// Healthy reports errors that say nothing about upstream health, such as a
	// rejected credential. They are returned to the caller but not counted.
	Healthy func(err error) bool
}

// DefaultBreakerConfig returns settings suited to a slow, occasionally failing upstream
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Breaker guards calls returning T
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// NewBreaker creates a breaker that trips after FailureThreshold consecutive failures.
// onStateChange may be nil.
func NewBreaker[T any](cfg BreakerConfig, onStateChange func(name string, from, to string)) *Breaker[T] {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return cfg.Healthy != nil && cfg.Healthy(err)
		},
	}
	if onStateChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onStateChange(name, from.String(), to.String())
		}
	}
	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn under the breaker. When open, it fails immediately with
// gobreaker.ErrOpenState.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	return b.cb.Execute(fn)
}

// State reports the breaker state ("closed", "half-open", "open")
func (b *Breaker[T]) State() string {
	return b.cb.State().String()
}

// IsOpen reports whether err was produced by a rejecting breaker
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
