package middlewares

import (
	"context"
	"net/http"
	"os"
	"strings"

	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into a user id. The session
// cache answers first (optimistic, possibly stale); on a miss the database
// is authoritative and the snapshot is rewritten. A cached hit is
// reconciled against the store off the request path, so a deleted or
// disabled account loses its snapshot on its next request rather than at
// snapshot expiry.
func AuthMiddleware(sessions *services.SessionStore, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if os.Getenv("JWT_SECRET") == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		uid, err := utils.ParseSessionJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx := c.Request.Context()
		if snap, state := sessions.Lookup(ctx, uid); state == services.AuthYes {
			c.Set("uid", uid)
			c.Set("snapshot", snap)
			go reconcileSnapshot(sessions, users, uid)
			c.Next()
			return
		}

		// Unknown: the cache could not confirm, so the store decides.
		user, err := users.ByUID(uid)
		if err != nil || user.Disabled {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  utils.ErrUnauthenticated,
				"error": utils.ErrorMessage(utils.ErrUnauthenticated),
			})
			return
		}

		snap := user.ToSnapshot()
		_ = sessions.Save(ctx, snap)

		c.Set("uid", uid)
		c.Set("snapshot", &snap)
		c.Next()
	}
}

// reconcileSnapshot is the authoritative half of the optimistic cache hit.
// It runs after the response is already on its way, so it uses its own
// context rather than the finished request's.
func reconcileSnapshot(sessions *services.SessionStore, users repository.UserRepository, uid string) {
	ctx := context.Background()
	user, err := users.ByUID(uid)
	if err != nil || user.Disabled {
		_ = sessions.Clear(ctx, uid)
		return
	}
	_ = sessions.Save(ctx, user.ToSnapshot())
}
