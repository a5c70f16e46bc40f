package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escrowdesk/backend/internal/infrastructure/auth"
	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ServiceNameKey = "service_name"
	ClaimsKey      = "claims"
)

// ServiceAuthConfig configures the service token middleware
type ServiceAuthConfig struct {
	JWTService *auth.JWTService
	SkipPaths  []string
}

// ServiceAuth validates the bearer service token on every request.
// Requests to skip paths (health checks, token issuance) pass through.
func ServiceAuth(cfg ServiceAuthConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ServiceNameKey, claims.ServiceName)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetServiceName returns the authenticated service name from the context
func GetServiceName(c *gin.Context) string {
	if name, exists := c.Get(ServiceNameKey); exists {
		if s, ok := name.(string); ok {
			return s
		}
	}
	return ""
}

var errMissingAuthHeader = errors.New("missing authorization header")

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func abortUnauthorized(c *gin.Context, err error) {
	message := "authentication required"
	switch {
	case errors.Is(err, errMissingAuthHeader):
		message = "missing authorization header"
	case errors.Is(err, auth.ErrExpiredToken):
		message = "token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingService):
		message = "invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
