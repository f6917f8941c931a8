package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(app *App, header string) (*AppContext, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/1/relationships", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return &AppContext{Context: e.NewContext(req, rec), App: app}, rec
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestAuthMiddleware_MasterKey(t *testing.T) {
	app := &App{MasterAPIKey: "secret", MasterUserID: 9, MasterUserRole: "admin"}
	c, rec := newContext(app, "Bearer secret")

	if err := AuthMiddleware(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.User == nil || c.User.UserID != 9 || !HasPermission(c.User, "relationship.analyze") {
		t.Fatalf("unexpected user %+v", c.User)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app := &App{MasterAPIKey: "secret", MasterUserID: 9, MasterUserRole: "admin"}

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": "secret",
		"wrong key": "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext(app, header)
			if err := AuthMiddleware(ok)(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	mw := RequirePermission("relationship.update")

	c, rec := newContext(&App{}, "")
	c.User = &AppUser{UserID: 1, Permissions: []string{"relationship.view"}}
	if err := mw(ok)(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	c, rec = newContext(&App{}, "")
	c.User = &AppUser{UserID: 1, Permissions: []string{"relationship.update"}}
	if err := mw(ok)(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCanAccessProject(t *testing.T) {
	tests := []struct {
		name  string
		user  *AppUser
		owner int64
		want  bool
	}{
		{"owner", &AppUser{UserID: 3, Role: "user"}, 3, true},
		{"stranger", &AppUser{UserID: 4, Role: "user"}, 3, false},
		{"admin", &AppUser{UserID: 4, Role: "admin"}, 3, true},
		{"anonymous", nil, 3, false},
	}
	for _, tt := range tests {
		if got := CanAccessProject(tt.user, tt.owner); got != tt.want {
			t.Errorf("%s: CanAccessProject = %v, want %v", tt.name, got, tt.want)
		}
	}
}
