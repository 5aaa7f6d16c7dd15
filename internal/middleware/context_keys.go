package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// UserIDHeader lets a fronting proxy name the user a request acts for.
const UserIDHeader = "X-User-ID"

// DefaultUserID is recorded as creator when no user is named.
const DefaultUserID = "system"

// UserIdentity stores the acting user's ID in the request context and adds it
// to the request logger. There is no authentication: the header is trusted.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			userID = DefaultUserID
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		logger := GetLoggerFromCtx(ctx).With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(WithLogger(ctx, logger))
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		if v, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return v, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	return userID, ok
}
