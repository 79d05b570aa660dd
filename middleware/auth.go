// middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/config"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

const bearerPrefix = "Bearer "

// authenticate resolves the bearer token, writing the rejection itself on failure.
func authenticate(c *gin.Context, issuer *auth.TokenIssuer) (*model.Principal, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		util.RespondWithError(c, http.StatusUnauthorized, "Authorization required", blog_errors.ErrUnauthorized)
		return nil, false
	}
	principal, err := issuer.Verify(header[len(bearerPrefix):])
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token", err)
		return nil, false
	}
	return principal, true
}

// RequireAuth admits requests carrying a valid bearer token.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authenticate(c, issuer)
		if !ok {
			return
		}
		util.SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireAdmin admits the master API key, or a token whose role is one of cfg.AdminRoles.
func RequireAdmin(issuer *auth.TokenIssuer, cfg config.AuthConfiguration) gin.HandlerFunc {
	masterKey := []byte(cfg.AdminAPIKey)
	roles := make(map[string]bool, len(cfg.AdminRoles))
	for _, r := range cfg.AdminRoles {
		roles[r] = true
	}

	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-Key"); key != "" && len(masterKey) > 0 &&
			subtle.ConstantTimeCompare([]byte(key), masterKey) == 1 {
			util.SetPrincipal(c, &model.Principal{MasterKey: true, Role: model.RoleAdmin})
			c.Next()
			return
		}

		principal, ok := authenticate(c, issuer)
		if !ok {
			return
		}
		if !roles[principal.Role] {
			util.RespondWithError(c, http.StatusForbidden, "Insufficient permissions", blog_errors.ErrForbidden)
			return
		}
		util.SetPrincipal(c, principal)
		c.Next()
	}
}
