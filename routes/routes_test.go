package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cityfix-be/controllers"
	"cityfix-be/controllers/mocks"
	"cityfix-be/middlewares"
	"cityfix-be/models"
	"cityfix-be/routes"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func deny(status int) gin.HandlerFunc {
	return func(c *gin.Context) { c.AbortWithStatus(status) }
}

func newRouter(t *testing.T, guards routes.Guards) (*gin.Engine, *mocks.MockIssueService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	issues := mocks.NewMockIssueService(ctrl)

	r := gin.New()
	routes.Register(r, guards, routes.Controllers{
		Auth:     controllers.NewAuthController(mocks.NewMockAccountService(ctrl), time.Second),
		Issues:   controllers.NewIssueController(issues, time.Second),
		Admin:    controllers.NewAdminController(mocks.NewMockAdminService(ctrl), time.Second),
		Realtime: controllers.NewRealtimeController(nil),
	})
	return r, issues
}

func TestPublicFeedSkipsAuth(t *testing.T) {
	r, issues := newRouter(t, routes.Guards{Verify: deny(http.StatusUnauthorized), Auth: deny(http.StatusUnauthorized)})
	issues.EXPECT().List(gomock.Any(), services.FeedQuery{}).Return([]models.IssueView{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/issues", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := newRouter(t, routes.Guards{Verify: deny(http.StatusUnauthorized), Auth: deny(http.StatusUnauthorized)})

	protected := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/fcm-token"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPut, "/api/citizen/profile"},
		{http.MethodPost, "/api/issues"},
		{http.MethodGet, "/api/issues/mine"},
		{http.MethodPut, "/api/issues/65f000000000000000000001"},
		{http.MethodPost, "/api/issues/65f000000000000000000001/vote"},
		{http.MethodPost, "/api/issues/65f000000000000000000001/comments"},
		{http.MethodPost, "/api/issues/65f000000000000000000001/report"},
		{http.MethodPost, "/api/issues/65f000000000000000000001/feedback"},
		{http.MethodGet, "/api/admin/issues"},
		{http.MethodPut, "/api/admin/issues/65f000000000000000000001/status"},
		{http.MethodPost, "/api/admin/issues/65f000000000000000000001/reconcile"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodPost, "/api/admin/users"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPut, "/api/admin/users/65f000000000000000000001/status"},
		{http.MethodGet, "/api/admin/moderation/reports"},
		{http.MethodDelete, "/api/admin/moderation/reports/65f000000000000000000001/dismiss"},
		{http.MethodDelete, "/api/admin/moderation/reports/65f000000000000000000001/issue"},
	}
	for _, p := range protected {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

func TestIssueLimitOnlyGuardsCreate(t *testing.T) {
	citizen := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCitizen}
	asCitizen := func(c *gin.Context) {
		c.Set(middlewares.UserKey, citizen)
		c.Next()
	}
	r, issues := newRouter(t, routes.Guards{
		Verify:     asCitizen,
		Auth:       asCitizen,
		IssueLimit: deny(http.StatusTooManyRequests),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/issues", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	id := primitive.NewObjectID()
	issues.EXPECT().Vote(gomock.Any(), id, citizen).Return(&services.VoteResult{Action: models.Voted, UrgencyCount: 1}, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/issues/"+id.Hex()+"/vote", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleGateBeforeHandler(t *testing.T) {
	citizen := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCitizen}
	asCitizen := func(c *gin.Context) {
		c.Set(middlewares.UserKey, citizen)
		c.Next()
	}
	r, _ := newRouter(t, routes.Guards{Verify: asCitizen, Auth: asCitizen})

	for _, path := range []string{"/api/admin/issues", "/api/admin/analytics", "/api/admin/users", "/api/admin/moderation/reports"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}
