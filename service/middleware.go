package service

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"library/models"
)

const RequestIDKey = "request_id"

// RequestID propagates X-Request-ID, generating one when the caller sent none.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(RequestIDKey),
			"remote_addr", c.ClientIP(),
		)
	}
}

// CacheUserRequest records the request under the username query parameter.
// Requests without a username are not recorded.
func (server *Server) CacheUserRequest(c *gin.Context) {
	username, ok := c.GetQuery("username")

	if !ok || username == "" {
		c.Next()
		return
	}

	userRequest := models.UserRequest{
		Method: c.Request.Method,
		Route:  c.Request.URL.Path,
	}

	request, err := json.Marshal(userRequest)
	if err == nil {
		err = server.Cache.Write(username, request)
	}
	// Not failing a request if there's a problem caching it
	if err != nil {
		server.Logger.Warn("caching user request failed", "username", username, "error", err)
	}

	c.Next()
}
