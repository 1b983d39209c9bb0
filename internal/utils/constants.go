package utils

// HTTP Header Constants
const (
	// Standard HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"

	// Request tracking headers
	HeaderRequestID = "X-Request-ID"

	// Client IP headers (priority order)
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"

	// CORS headers
	HeaderAccessControlAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAccessControlAllowMethods = "Access-Control-Allow-Methods"
	HeaderAccessControlAllowHeaders = "Access-Control-Allow-Headers"
)

// CORS values
const (
	CORSAllowOriginAll  = "*"
	CORSAllowMethodsAll = "POST, GET, OPTIONS, PUT, DELETE"
	CORSAllowHeadersStd = "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID"
)

// Content types
const (
	ContentTypeJSON = "application/json"
)
