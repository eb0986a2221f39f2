package middleware

import (
	"github.com/gin-gonic/gin"

	"library-api/internal/shared/apperror"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/response"
)

const identityKey = "identity"

// Authenticate requires a valid bearer token and stores the caller
func Authenticate(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuthenticate resolves the caller when a valid token is present
// and lets anonymous requests through otherwise.
func OptionalAuthenticate(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if apperror.KindOf(err) == apperror.KindInternal {
				response.AbortWithError(c, err)
				return
			}
			c.Next()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(identityKey, identity)
	c.Set("userID", identity.ID)
	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
}

// CurrentIdentity returns the caller resolved by Authenticate, or nil
func CurrentIdentity(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}
