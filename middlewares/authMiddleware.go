package middlewares

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cityfix-be/access"
	"cityfix-be/apperrors"
	"cityfix-be/identity"
	"cityfix-be/models"

	"github.com/gin-gonic/gin"
)

// Keys under which the middlewares store the caller on the gin context.
const (
	UserKey     = "user"
	IdentityKey = "identity"
)

// UserLookup resolves a verified subject to its registered account.
type UserLookup interface {
	FindUserBySubject(ctx context.Context, subject string) (*models.User, error)
}

// VerifyIdentity checks the bearer credential and stores the verified identity. It does not require
// the caller to be registered yet, which is what the register endpoint needs.
func VerifyIdentity(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := verify(c, verifier)
		if !ok {
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

// AuthMiddleware verifies the bearer credential and loads the registered, enabled account behind it.
func AuthMiddleware(verifier identity.Verifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := verify(c, verifier)
		if !ok {
			return
		}

		user, err := users.FindUserBySubject(c.Request.Context(), id.Subject)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("[auth] rejected subject %s: not registered", id.Subject)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: User not registered in system."})
			} else {
				log.Printf("[auth] failed to load user %s: %v", id.Subject, err)
				c.JSON(apperrors.Status(err), gin.H{"error": apperrors.PublicMessage(err)})
			}
			c.Abort()
			return
		}
		if user.IsDisabled {
			log.Printf("[auth] rejected user %s: disabled", user.ID.Hex())
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Your account has been disabled. Please contact the administrator."})
			c.Abort()
			return
		}

		c.Set(IdentityKey, id)
		c.Set(UserKey, user)
		c.Next()
	}
}

func verify(c *gin.Context, verifier identity.Verifier) (*identity.Identity, bool) {
	token, ok := identity.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided."})
		c.Abort()
		return nil, false
	}

	id, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		log.Printf("[auth] token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token."})
		c.Abort()
		return nil, false
	}
	return id, true
}

// RequireAction lets through only roles that may attempt action. It must run after AuthMiddleware.
// Rules that depend on the target (ownership, department) are checked again by the services.
func RequireAction(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			c.Abort()
			return
		}
		if !access.RoleMayAttempt(user.Role, action) {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Forbidden: requires one of [%s].", roleList(action))})
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleList(action access.Action) string {
	roles := access.Roles(action)
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// CurrentUser returns the account AuthMiddleware stored.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentIdentity returns the verified identity stored by VerifyIdentity or AuthMiddleware.
func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}
