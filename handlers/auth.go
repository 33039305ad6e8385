package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"notifyhub/auth"
	"notifyhub/config"
	"notifyhub/models"

	"github.com/gin-gonic/gin"
)

// Login checks the submitted credentials against the configured operator
// account and issues a bearer token on match. Accepts JSON or form bodies.
func Login(cfg config.AuthConfig, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.WebUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.WebPassword)) == 1
		if !userOK || !passOK {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
			return
		}

		token, err := tokens.Issue(req.Username)
		if err != nil {
			log.Printf("Issue token error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, models.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
