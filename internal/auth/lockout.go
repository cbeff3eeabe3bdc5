// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Lockout throttles failed logins per account. Each account gets a token
// bucket sized to the configured failure budget; once drained, further
// attempts are rejected until the bucket refills. Successful logins clear
// the account's bucket.
type Lockout struct {
	mu       sync.Mutex
	buckets  map[string]*lockoutBucket
	failures int
	window   time.Duration
}

type lockoutBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLockout creates a lockout tracker allowing maxFailures failed
// attempts per account within the lockout window.
func NewLockout(maxFailures int, window time.Duration) *Lockout {
	if maxFailures < 1 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Lockout{
		buckets:  make(map[string]*lockoutBucket),
		failures: maxFailures,
		window:   window,
	}
}

// Allowed reports whether another login attempt for the account may
// proceed. It consumes one token from the account's failure budget; the
// token is returned by Reset on success.
func (l *Lockout) Allowed(username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep()

	b, ok := l.buckets[username]
	if !ok {
		b = &lockoutBucket{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.failures)), l.failures),
		}
		l.buckets[username] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// Reset clears the failure budget for an account after a successful login.
func (l *Lockout) Reset(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, username)
}

// sweep drops buckets idle for longer than two windows (must hold mu).
// Idle buckets are fully refilled anyway, so dropping them is lossless.
func (l *Lockout) sweep() {
	cutoff := time.Now().Add(-2 * l.window)
	for username, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, username)
		}
	}
}
