package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/haanhpham/autopress/pkg/apperror"
	"github.com/haanhpham/autopress/pkg/auth"
	"github.com/haanhpham/autopress/pkg/logger"
)

const GinContextKeyRole = "role"

func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyRole, claims.Role)

		c.Next()
	}
}

// ErrorMiddleware translates apperror values attached by handlers into HTTP
// responses.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(apperror.ToHTTPStatus(appErr), appErr.ToJSON())
			return
		}

		log.Error("Unhandled error in request", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
