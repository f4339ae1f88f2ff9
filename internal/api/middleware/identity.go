package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

// The session layer in front of the API authenticates the browser and
// forwards who it is through the contact headers, together with a shared
// secret proving the request came through it. Browsers talking to the API
// directly cannot know the secret, so their contact headers are dropped and
// the activity is stored anonymously.
const (
	ContactIDHeader    = "X-Contact-ID"
	ContactEmailHeader = "X-Contact-Email"
	UpstreamAuthHeader = "X-Upstream-Auth"

	ContactIDKey    = "contact_id"
	ContactEmailKey = "contact_email"
)

// Identity copies the forwarded contact headers into the gin context when
// the request carries secret in X-Upstream-Auth. An empty secret disables
// forwarded identity altogether.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if trustedUpstream(c.GetHeader(UpstreamAuthHeader), secret) {
			if id := strings.TrimSpace(c.GetHeader(ContactIDHeader)); id != "" {
				c.Set(ContactIDKey, id)
			}
			if email := strings.TrimSpace(c.GetHeader(ContactEmailHeader)); email != "" {
				c.Set(ContactEmailKey, strings.ToLower(email))
			}
		}
		c.Next()
	}
}

func trustedUpstream(got, secret string) bool {
	if secret == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}
