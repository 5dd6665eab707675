package handler

import (
	"strings"
	"time"

	"idolagency/internal/infrastructure/cache"
	"idolagency/internal/infrastructure/security"
	"idolagency/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ctxUserID   = "user_id"
	ctxPlayerID = "player_id"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logrus.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
			"method":  c.Request.Method,
			"path":    path,
		}).Info("http request")
	}
}

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithField("panic", err).Error("request handler panicked")
				c.AbortWithStatusJSON(500, gin.H{
					"code":    500,
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// AuthMiddleware validates the bearer token and resolves the caller's
// player profile. Downstream handlers read the ids from the context and
// never trust client-supplied ownership claims.
func AuthMiddleware(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	playerRepo := repository.NewPlayerRepository(db)
	denylist := cache.NewTokenDenylist(rdb)

	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"code": 401, "message": "missing bearer token"})
			return
		}

		claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"code": 401, "message": "invalid or expired token"})
			return
		}

		// A revocation check we cannot complete counts as revoked.
		revoked, err := denylist.IsRevoked(c.Request.Context(), token)
		if err != nil {
			logrus.WithError(err).Error("token revocation check failed")
		}
		if err != nil || revoked {
			c.AbortWithStatusJSON(401, gin.H{"code": 401, "message": "invalid or expired token"})
			return
		}

		profile, err := playerRepo.GetByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"code": 401, "message": "player profile not found"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxPlayerID, profile.ID)
		c.Next()
	}
}

func playerID(c *gin.Context) int64 {
	return c.GetInt64(ctxPlayerID)
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
