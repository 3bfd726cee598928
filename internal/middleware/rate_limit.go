package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/zkkaa/sipetak-sub000/internal/shared/response"
)

// keyedLimiter menyimpan satu token bucket per key (IP atau user id).
// Map tidak pernah dibersihkan; jumlah key dibatasi populasi IP dan
// user aktif satu kota, bukan internet terbuka.
type keyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	return limiter
}

// RateLimitByIP membatasi endpoint publik (register, login, lapor warga)
// per alamat IP.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Terlalu banyak request, coba lagi nanti", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser membatasi endpoint yang sudah terautentikasi per user.
// Request tanpa user id diloloskan; auth middleware yang menolaknya.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id_validated")
		if userID == "" {
			userID = c.GetString("user_id")
		}
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.get(userID).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Terlalu banyak request, coba lagi nanti", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
