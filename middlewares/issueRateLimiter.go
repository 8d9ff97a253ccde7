package middlewares

import (
	"log"
	"net/http"
	"time"

	"cityfix-be/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const issueLimitWindow = 24 * time.Hour

// IssueRateLimiter caps how many issues one citizen can submit per window. It must run after
// AuthMiddleware. When Redis fails the request is let through.
func IssueRateLimiter(client *redis.Client, prefix string, limit int, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		// Create individual key for each user
		userKey := prefix + ":" + user.ID.Hex()

		count, err := client.Incr(ctx, userKey).Result()
		if err != nil {
			log.Printf("[ratelimit] redis error incrementing %s: %v", userKey, err)
			c.Next()
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := client.Expire(ctx, userKey, issueLimitWindow).Err(); err != nil {
				log.Printf("[ratelimit] redis error setting TTL on %s: %v", userKey, err)
			}
		}

		if count > int64(limit) {
			m.IssueRateLimited()
			retryAfter, _ := client.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Daily issue limit reached. Please try again later.",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
