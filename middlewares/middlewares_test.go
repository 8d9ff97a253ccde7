package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cityfix-be/access"
	"cityfix-be/apperrors"
	"cityfix-be/identity"
	"cityfix-be/metrics"
	"cityfix-be/models"
	authUtils "cityfix-be/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type userMap map[string]*models.User

func (m userMap) FindUserBySubject(_ context.Context, subject string) (*models.User, error) {
	if subject == "broken" {
		return nil, apperrors.Upstream("find user", errors.New("server selection timeout"))
	}
	u, ok := m[subject]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	return u, nil
}

func verifier(t *testing.T) identity.Verifier {
	t.Helper()
	v, err := identity.NewJWTVerifier(testSecret)
	require.NoError(t, err)
	return v
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token, err := authUtils.GenerateToken(testSecret, subject, subject+"@example.com", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func perform(r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestAuthMiddleware(t *testing.T) {
	citizen := &models.User{ID: primitive.NewObjectID(), Subject: "citizen", Role: models.RoleCitizen}
	disabled := &models.User{ID: primitive.NewObjectID(), Subject: "blocked", Role: models.RoleCitizen, IsDisabled: true}
	users := userMap{"citizen": citizen, "blocked": disabled}

	r := gin.New()
	r.GET("/me", AuthMiddleware(verifier(t), users), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		id, ok := CurrentIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": user.ID.Hex(), "email": id.Email})
	})

	t.Run("registered user", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/me", bearer(t, "citizen"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), citizen.ID.Hex())
		assert.Contains(t, w.Body.String(), "citizen@example.com")
	})

	tests := []struct {
		name   string
		auth   string
		status int
		msg    string
	}{
		{"no header", "", http.StatusUnauthorized, "Unauthorized: No token provided."},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Unauthorized: No token provided."},
		{"bad token", "Bearer not-a-jwt", http.StatusUnauthorized, "Unauthorized: Invalid or expired token."},
		{"unregistered", bearer(t, "stranger"), http.StatusUnauthorized, "Unauthorized: User not registered in system."},
		{"disabled", bearer(t, "blocked"), http.StatusForbidden, "Forbidden: Your account has been disabled. Please contact the administrator."},
		{"store down", bearer(t, "broken"), http.StatusServiceUnavailable, "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, "/me", tt.auth)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, errorBody(t, w))
		})
	}
}

func TestVerifyIdentityAllowsUnregisteredCaller(t *testing.T) {
	r := gin.New()
	r.POST("/register", VerifyIdentity(verifier(t)), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		require.True(t, ok)
		_, hasUser := CurrentUser(c)
		assert.False(t, hasUser)
		c.JSON(http.StatusOK, gin.H{"subject": id.Subject})
	})

	w := perform(r, http.MethodPost, "/register", bearer(t, "new-user"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-user")

	w = perform(r, http.MethodPost, "/register", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAction(t *testing.T) {
	users := userMap{
		"citizen": {ID: primitive.NewObjectID(), Role: models.RoleCitizen},
		"sector":  {ID: primitive.NewObjectID(), Role: models.RoleSectorAdmin, Department: models.Road},
		"super":   {ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin},
	}
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/analytics", AuthMiddleware(verifier(t), users), RequireAction(access.ActionViewAnalytics), ok)
	r.POST("/vote", AuthMiddleware(verifier(t), users), RequireAction(access.ActionVote), ok)
	r.GET("/bare", RequireAction(access.ActionVote), ok)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/analytics", bearer(t, "sector")).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/analytics", bearer(t, "super")).Code)

	w := perform(r, http.MethodGet, "/analytics", bearer(t, "citizen"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: requires one of [SECTOR_ADMIN, SUPER_ADMIN].", errorBody(t, w))

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodPost, "/vote", bearer(t, "citizen")).Code)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPost, "/vote", bearer(t, "super")).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/bare", "").Code)
}

func TestIssueRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	m := metrics.New(prometheus.NewRegistry())

	alice := &models.User{ID: primitive.NewObjectID(), Subject: "alice", Role: models.RoleCitizen}
	bob := &models.User{ID: primitive.NewObjectID(), Subject: "bob", Role: models.RoleCitizen}
	users := userMap{"alice": alice, "bob": bob}

	r := gin.New()
	r.POST("/issues", AuthMiddleware(verifier(t), users), IssueRateLimiter(client, "issue_limit", 2, m), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/issues", bearer(t, "alice")).Code)
	}

	w := perform(r, http.MethodPost, "/issues", bearer(t, "alice"))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, issueLimitWindow.Seconds(), body["retry_after"], 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IssuesRateLimited))

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/issues", bearer(t, "bob")).Code, "limits are per user")
	assert.Equal(t, issueLimitWindow, mr.TTL("issue_limit:"+alice.ID.Hex()))

	mr.FastForward(issueLimitWindow + time.Second)
	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/issues", bearer(t, "alice")).Code, "window expired")
}

func TestIssueRateLimiterFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	users := userMap{"alice": {ID: primitive.NewObjectID(), Role: models.RoleCitizen}}
	r := gin.New()
	r.POST("/issues", AuthMiddleware(verifier(t), users), IssueRateLimiter(client, "issue_limit", 1, nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, perform(r, http.MethodPost, "/issues", bearer(t, "alice")).Code)
}
