package middleware

import "github.com/gin-gonic/gin"

// SecurityHeadersMiddleware sets the response hardening headers. hsts is
// enabled only behind TLS in production.
func SecurityHeadersMiddleware(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()

		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "no-referrer")
		// Uploaded turf images are served from this origin.
		headers.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:")
		if hsts {
			headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
