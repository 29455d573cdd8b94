/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beefsack/go-rate"
)

// Throttle tuple.
// Throttle limits the acquisitions per second, a limit <= 0 lets everything pass.
type Throttle struct {
	limit atomic.Int32
	rate  *rate.RateLimiter
	mu    sync.Mutex
}

// NewThrottle creates the new throttle.
func NewThrottle(l int) *Throttle {
	throttle := &Throttle{}
	throttle.Set(l)
	return throttle
}

// Acquire waits for a slot of the current second, or for the ctx.
func (throttle *Throttle) Acquire(ctx context.Context) error {
	for {
		if throttle.limit.Load() <= 0 {
			return nil
		}

		throttle.mu.Lock()
		ok, remaining := throttle.rate.Try()
		throttle.mu.Unlock()
		if ok {
			return nil
		}

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Set used to set the quota for the throttle.
func (throttle *Throttle) Set(l int) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	throttle.limit.Store(int32(l))
	if l > 0 {
		throttle.rate = rate.New(l, time.Second)
	}
}

// Limits returns the limits of the throttle.
func (throttle *Throttle) Limits() int {
	return int(throttle.limit.Load())
}
