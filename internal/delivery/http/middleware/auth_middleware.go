package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"internmatch-backend/config"
	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/internal/domain"
	"internmatch-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware requires a valid bearer token and sets the user identity on
// the request context. The subject claim is treated as an opaque stable ID.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		sub, email, err := parseToken(tokenString, jwksProvider, cfg)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through with their device scope. The discovery feed
// works unauthenticated; only saving requires an account.
func OptionalAuth(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
			c.Set(string(domain.KeyDeviceID), deviceID)
		}

		tokenString := extractToken(c)
		if tokenString != "" {
			if sub, email, err := parseToken(tokenString, jwksProvider, cfg); err == nil {
				c.Set(string(domain.KeyUserID), sub)
				c.Set(string(domain.KeyUserEmail), email)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	cookie, err := c.Cookie("auth_token")
	if err == nil && cookie != "" {
		return cookie
	}
	return ""
}

func parseToken(tokenString string, jwksProvider *auth.Provider, cfg *config.Config) (sub, email string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			// HS256 - Use Secret
			if cfg.JWTSecret == "" {
				return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		}

		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			// RS256 - Use JWKS
			return jwksProvider.KeyFunc(token)
		}

		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid claims")
	}

	sub, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if sub == "" {
		return "", "", fmt.Errorf("missing sub claim")
	}
	return sub, email, nil
}
