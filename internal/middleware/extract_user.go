package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zkkaa/sipetak-sub000/internal/shared/response"
)

// ExtractUserID memvalidasi user_id hasil parse token sebelum dipakai
// handler; setelah ini key user_id_validated dijamin UUID string.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("user_id")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User tidak terautentikasi", nil)
			c.Abort()
			return
		}

		userID, ok := raw.(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "Format user_id tidak valid", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "Format user_id tidak valid", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
