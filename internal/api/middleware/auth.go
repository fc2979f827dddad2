package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/benni94/mazeChromeBE/internal/config"
)

// AdminAuth guards the maintenance endpoints with the shared admin
// credential via HTTP Basic auth. The password is checked against
// ADMIN_PASSWORD_HASH (bcrypt) when configured, otherwise against the
// plaintext ADMIN_PASSWORD in constant time.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, password, ok := c.Request.BasicAuth()

		if !ok || !credentialsValid(cfg, user, password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func credentialsValid(cfg *config.Config, user, password string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) != 1 {
		return false
	}

	if cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) == nil
	}

	// an unset credential never matches
	if cfg.AdminPassword == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
}
