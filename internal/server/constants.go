package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Repeated failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Request budget exhausted"
)

// Abuse-tracking limits per client IP. The bot retries with backoff, so a
// healthy client never comes near these.
const (
	DetectorWindow          = time.Minute
	DetectorRequestBudget   = 600
	DetectorFailedAuthLimit = 10
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgProbeDetected    = "Scanner probe rejected"
)

// HTTP header names
const (
	HeaderAPIKey             = "X-API-Key"
	HeaderAuthorization      = "Authorization"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderCacheControl       = "Cache-Control"
	HeaderReferrerPolicy     = "Referrer-Policy"
)

// Security header values for a JSON-only API: responses carry per-member
// balances and must never be cached or framed.
const (
	HeaderValueNoSniff    = "nosniff"
	HeaderValueDeny       = "DENY"
	HeaderValueNoStore    = "no-store"
	HeaderValueNoReferrer = "no-referrer"
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
