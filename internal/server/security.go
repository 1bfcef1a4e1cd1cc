package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/osse101/DegenBox_Go/internal/handler"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/metrics"
)

func isPublicPath(path string) bool {
	return slices.ContainsFunc(PublicPaths, func(p string) bool { return strings.HasPrefix(path, p) })
}

// AuthMiddleware rejects requests to non-public paths that do not carry the
// configured API key
func AuthMiddleware(apiKey string, trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"ip", ip,
					"path", r.URL.Path,
					"has_key", provided != "")

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// AbuseDetector tracks failed authentications per IP over a fixed window and
// meters requests per client key with a token bucket refilling at
// RequestsPerWindow per DetectorWindow.
type AbuseDetector struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	rejected    map[string]int
	windowStart time.Time
	limiters    *lru.Cache[string, *rate.Limiter]
	now         func() time.Time
}

func NewAbuseDetector() *AbuseDetector {
	limiters, err := lru.New[string, *rate.Limiter](MaxTrackedClients)
	if err != nil {
		panic(err)
	}
	return &AbuseDetector{
		failedAuth:  make(map[string]int),
		rejected:    make(map[string]int),
		windowStart: time.Now(),
		limiters:    limiters,
		now:         time.Now,
	}
}

// RecordFailedAuth counts a failed authentication from ip
func (d *AbuseDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.roll()
	d.failedAuth[ip]++
	if n := d.failedAuth[ip]; n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// Allow spends one token from key's bucket and reports whether there was one
func (d *AbuseDetector) Allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.roll()
	lim, ok := d.limiters.Get(key)
	if !ok {
		lim = rate.NewLimiter(rate.Every(DetectorWindow/RequestsPerWindow), RequestsPerWindow)
		d.limiters.Add(key, lim)
	}
	if lim.AllowN(d.now(), 1) {
		return true
	}

	d.rejected[key]++
	if n := d.rejected[key]; n == 1 || n%HighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "client", key, "rejected_in_window", n)
	}
	return false
}

// roll must be called with mu held
func (d *AbuseDetector) roll() {
	if now := d.now(); now.Sub(d.windowStart) > DetectorWindow {
		clear(d.rejected)
		clear(d.failedAuth)
		d.windowStart = now
	}
}

// RateLimitMiddleware enforces the per-client request budget. A request is
// billed to its caller identity when it names one, otherwise to its IP.
func RateLimitMiddleware(trustedProxies []string, detector *AbuseDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(clientKey(r, trustedProxies)) {
				metrics.RateLimited.Inc()
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request, trustedProxies []string) string {
	if caller := r.Header.Get(handler.HeaderCallerID); caller != "" {
		return ClientKeyCallerPrefix + caller
	}
	return ClientKeyIPPrefix + extractIP(r, trustedProxies)
}

// extractIP returns the client address. X-Forwarded-For is honoured only when
// the direct peer is a trusted proxy, and then only its rightmost hop.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses. Balances and
// box state change on every call, so nothing may be cached.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			h.Set(HeaderCacheControl, HeaderValueNoStore)
			next.ServeHTTP(w, r)
		})
	}
}
