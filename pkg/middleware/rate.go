package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kipngetich-lab/TukoShop-App/pkg/response"
)

// bucket is a simple token bucket refilled at a fixed rate.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimit returns a per-client-IP token bucket middleware allowing
// `limit` requests per `window`. Used on the public auth endpoints to slow
// credential stuffing; stale buckets are pruned opportunistically.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)
	rate := float64(limit) / window.Seconds() // tokens per second

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rateClientIP(r)
			now := time.Now()

			mu.Lock()
			b, ok := buckets[ip]
			if !ok {
				b = &bucket{tokens: float64(limit), lastSeen: now}
				buckets[ip] = b
			}
			b.tokens += now.Sub(b.lastSeen).Seconds() * rate
			if b.tokens > float64(limit) {
				b.tokens = float64(limit)
			}
			b.lastSeen = now

			allowed := b.tokens >= 1
			if allowed {
				b.tokens--
			}

			if len(buckets) > 10_000 {
				for k, v := range buckets {
					if now.Sub(v.lastSeen) > 10*window {
						delete(buckets, k)
					}
				}
			}
			mu.Unlock()

			if !allowed {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
