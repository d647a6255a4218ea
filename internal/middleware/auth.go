package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/logger"
	"gymhub/internal/metrics"
	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	AuthHeader     = "authentication-key"
	AuthQueryParam = "authenticationKey"

	// upper bound on how much of a JSON body the gate will buffer
	maxAuthBodyBytes = 1 << 20
)

// KeyResolver maps an authentication key to its user. *service.UserService satisfies it.
type KeyResolver interface {
	ResolveKey(ctx context.Context, key string) (*models.User, error)
}

// Auth проверяет ключ аутентификации и роль пользователя.
// Ключ ищется в теле (authenticationKey), заголовке authentication-key, query authenticationKey.
func Auth(resolver KeyResolver, m *metrics.Metrics, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractKey(c)
		if key == "" {
			m.AuthFailure("missing")
			abort(c, apperrors.ErrKeyMissing)
			return
		}

		user, err := resolver.ResolveKey(c.Request.Context(), key)
		if err != nil {
			if apperrors.Is(err, apperrors.KindUnauthenticated) {
				m.AuthFailure("invalid")
				abort(c, apperrors.ErrKeyInvalid)
				return
			}
			logger.WithContext(c.Request.Context()).Error("Failed to resolve authentication key", "error", err)
			abort(c, err)
			return
		}

		if !user.HasRole(roles...) {
			m.AuthFailure("forbidden")
			abort(c, apperrors.ErrForbidden)
			return
		}

		c.Set(UserKey, user)
		c.Request = c.Request.WithContext(ContextWithUser(c.Request.Context(), user))
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := apperrors.Message(err)
	if status == http.StatusInternalServerError {
		message = "Failed to authenticate request"
	}
	c.AbortWithStatusJSON(status, gin.H{"status": status, "message": message})
}

// extractKey walks the carriers in priority order; first non-empty wins.
func extractKey(c *gin.Context) string {
	if key := keyFromBody(c); key != "" {
		return key
	}
	if key := strings.TrimSpace(c.GetHeader(AuthHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(c.Query(AuthQueryParam))
}

// keyFromBody peeks at a JSON body and puts it back for the handler.
func keyFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	body := c.Request.Body
	raw, err := io.ReadAll(io.LimitReader(body, maxAuthBodyBytes+1))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), body), body}
	if err != nil || len(raw) == 0 || len(raw) > maxAuthBodyBytes {
		return ""
	}

	var carrier struct {
		AuthenticationKey any `json:"authenticationKey"`
	}
	if err := json.Unmarshal(raw, &carrier); err != nil {
		return ""
	}
	if s, ok := carrier.AuthenticationKey.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
