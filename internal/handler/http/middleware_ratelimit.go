// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/utils"
)

const (
	loginLimiterCleanupEvery = 100
	loginLimiterEntryTTL     = 30 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginLimiter keeps one token bucket per client IP. Only failed logins take
// a token; a client whose bucket is empty is rejected before its credentials
// are checked.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rps      rate.Limit
	burst    int
	calls    int
	now      func() time.Time
}

func newLoginLimiter(rps float64, burst int) *loginLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &loginLimiter{
		limiters: make(map[string]*ipLimiter, 16),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *loginLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%loginLimiterCleanupEvery == 0 {
		for key, entry := range l.limiters {
			if now.Sub(entry.lastSeen) > loginLimiterEntryTTL {
				delete(l.limiters, key)
			}
		}
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Blocked reports whether ip has no failed attempts left.
func (l *loginLimiter) Blocked(ip string) bool {
	if l == nil {
		return false
	}
	return l.get(ip).TokensAt(l.now()) < 1
}

// Failed charges one failed attempt to ip.
func (l *loginLimiter) Failed(ip string) {
	if l == nil {
		return
	}
	l.get(ip).AllowN(l.now(), 1)
}

// limitFailedLogins answers 429 to clients that used up their failed login
// allowance.
func (h *Handler) limitFailedLogins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := h.clientIP(r)
		if h.loginLimiter.Blocked(ip) {
			logger.FromRequest(r).Warn().
				Str("func", "*Handler.limitFailedLogins").
				Str("ip", ip).
				Msg("login rate limit exceeded")
			utils.WriteError(w, ErrTooManyLoginAttempts.Error(), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address the login allowance is charged to. It is the
// socket peer unless that peer is a trusted proxy, in which case
// X-Forwarded-For is walked from the right and the first hop that is not a
// trusted proxy wins.
func (h *Handler) clientIP(r *http.Request) string {
	peer := remoteIP(r)
	if !h.isTrustedProxy(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !h.isTrustedProxy(hop) {
			return hop
		}
	}
	return peer
}

func (h *Handler) isTrustedProxy(ip string) bool {
	if len(h.trustedProxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range h.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func parseTrustedProxies(values []string, log *logger.Logger) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, value := range values {
		prefix, err := config.ParseTrustedProxy(value)
		if err != nil {
			log.Warn().Err(err).Str("proxy", value).Msg("ignoring invalid trusted proxy")
			continue
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}
