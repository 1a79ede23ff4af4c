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

	"github.com/candystand/CandyBot_Go/internal/logger"
)

// DetectorConfig sizes the per-IP abuse tracking. The only legitimate
// clients of this API are the community bot and ops tooling, so the budget
// is a bot-burst ceiling, not a public-traffic quota: a guild-wide reaction
// wave arrives from one bot IP and must fit inside one window.
type DetectorConfig struct {
	Window          time.Duration
	RequestBudget   int
	FailedAuthLimit int
}

// DefaultDetectorConfig returns the limits used in production.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Window:          DetectorWindow,
		RequestBudget:   DetectorRequestBudget,
		FailedAuthLimit: DetectorFailedAuthLimit,
	}
}

// SuspiciousActivityDetector keeps windowed per-IP counters for request
// volume and authentication failures. An IP that exhausts its request
// budget, or keeps presenting bad API keys, is rejected until the window
// rolls over.
type SuspiciousActivityDetector struct {
	cfg DetectorConfig
	now func() time.Time

	mu           sync.Mutex
	windowStart  time.Time
	requests     map[string]int
	authFailures map[string]int
}

func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	d := &SuspiciousActivityDetector{
		cfg: cfg,
		now: time.Now,
	}
	d.reset(d.now())
	return d
}

// reset starts a fresh window. Caller must hold the mutex (or be the
// constructor).
func (d *SuspiciousActivityDetector) reset(now time.Time) {
	d.windowStart = now
	d.requests = make(map[string]int)
	d.authFailures = make(map[string]int)
}

func (d *SuspiciousActivityDetector) rollWindow() {
	if now := d.now(); now.Sub(d.windowStart) > d.cfg.Window {
		d.reset(now)
	}
}

// RecordRequest counts a request against the IP's budget and reports
// whether it may proceed. An IP past the auth-failure limit is refused even
// when it still has request budget left.
func (d *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.requests[ip]++

	if d.authFailures[ip] >= d.cfg.FailedAuthLimit {
		return false
	}
	if d.requests[ip] > d.cfg.RequestBudget {
		// One alert per window edge, not one per rejected request.
		if d.requests[ip] == d.cfg.RequestBudget+1 {
			slog.Default().Warn(SecurityAlertHighRate,
				"ip", ip,
				"requests_in_window", d.requests[ip],
				"window", d.cfg.Window)
		}
		return false
	}
	return true
}

// RecordFailedAuth counts an authentication failure for the IP.
func (d *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.authFailures[ip]++

	if d.authFailures[ip] == d.cfg.FailedAuthLimit {
		slog.Default().Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"failures_in_window", d.authFailures[ip],
			"window", d.cfg.Window)
	}
}

// probePathFragments are request-path fingerprints of vulnerability
// scanners. This API serves nothing under any of them, so a hit is always
// noise or a probe.
var probePathFragments = []string{
	"/.env",
	"/.git",
	"/wp-",
	"/phpmyadmin",
	"/cgi-bin",
	".php",
}

func looksLikeProbe(path string) bool {
	lower := strings.ToLower(path)
	for _, fragment := range probePathFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the shared API key on everything outside
// PublicPaths. Key comparison is constant time.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"ip", ip,
					"path", r.URL.Path,
					"has_key", providedKey != "")

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, public := range PublicPaths {
		if strings.HasPrefix(path, public) {
			return true
		}
	}
	return false
}

// SecurityLoggingMiddleware enforces the per-IP budget and flags scanner
// probes before they reach routing.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if looksLikeProbe(r.URL.Path) {
				logger.FromContext(r.Context()).Warn(LogMsgProbeDetected,
					"ip", ip,
					"path", r.URL.Path)
				http.NotFound(w, r)
				return
			}

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request body size. The largest legitimate
// payload here is a grant request of a few hundred bytes.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets response headers for a JSON-only API:
// no sniffing, no framing, no caching of responses that carry balances.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueDeny)
			w.Header().Set(HeaderCacheControl, HeaderValueNoStore)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueNoReferrer)

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client IP. X-Forwarded-For is honored only when the
// direct peer is a configured trusted proxy, and then the rightmost hop is
// used: that is the address the trusted proxy actually saw.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}

	return remoteIP
}
