package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/models"
)

type fakeUserResolver struct {
	users map[string]*models.User
}

func (f fakeUserResolver) GetByClerkID(_ context.Context, clerkID string) (*models.User, error) {
	if user, ok := f.users[clerkID]; ok {
		return user, nil
	}
	return nil, apperrors.NotFound("user not found", nil)
}

func newAuthRouter(resolver UserResolver) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(resolver, "X-Auth-Subject", zap.NewNop()))
	r.GET("/me", RequireUser(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, user)
	})
	r.GET("/subject", RequireSubject(), func(c *gin.Context) {
		subject, _ := CallerSubject(c)
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	return r
}

func TestAuthenticateAttachesUser(t *testing.T) {
	resolver := fakeUserResolver{users: map[string]*models.User{
		"user_1": {ID: 1, ClerkID: "user_1", Role: models.RoleRecruiter},
	}}
	r := newAuthRouter(resolver)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Auth-Subject", "user_1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireUserWithoutIdentity(t *testing.T) {
	r := newAuthRouter(fakeUserResolver{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireUserWithUnmirroredSubject(t *testing.T) {
	r := newAuthRouter(fakeUserResolver{})

	// Subject is present but no account row exists yet: the subject-only
	// guard passes, the user guard does not.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Auth-Subject", "user_new")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("/me status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/subject", nil)
	req.Header.Set("X-Auth-Subject", "user_new")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("/subject status = %d, want 200", w.Code)
	}
}
