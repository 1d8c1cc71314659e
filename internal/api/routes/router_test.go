package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/api/routes"
)

func newTestRouter() http.Handler {
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(nil, handlers.CookieConfig{Name: "session"}),
		Category: handlers.NewCategoryHandler(nil, nil),
		Location: handlers.NewLocationHandler(nil),
		Amenity:  handlers.NewAmenityHandler(nil),
		Place:    handlers.NewPlaceHandler(nil),
		Review:   handlers.NewReviewHandler(nil),
		Favorite: handlers.NewFavoriteHandler(nil),
		User:     handlers.NewUserHandler(nil),
		Admin:    handlers.NewAdminHandler(nil, nil),
		Health: handlers.NewHealthHandler(map[string]handlers.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    nil,
		}),
	}
	return routes.NewRouter(h, routes.Options{
		AllowedOrigins: []string{"https://tourism.example"},
		AuthPerMinute:  5,
	}).SetupRoutes()
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestRouter_Health(t *testing.T) {
	w := serve(newTestRouter(), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "up", body.Data["postgres"])
	assert.Equal(t, "disabled", body.Data["redis"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_MalformedIdentifiers(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/places/not-a-uuid"},
		{http.MethodDelete, "/reviews/42"},
		{http.MethodGet, "/admin/categories/abc"},
		{http.MethodPut, "/locations/abc"},
		{http.MethodDelete, "/amenities/abc"},
		{http.MethodGet, "/favorites/abc"},
		{http.MethodPost, "/admin/users/abc/reset-password"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(router, tt.method, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/nowhere").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(router, http.MethodPatch, "/places").Code)
}

func TestRouter_LogoutClearsCookie(t *testing.T) {
	w := serve(newTestRouter(), http.MethodPost, "/auth/logout")

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/reviews", nil)
	req.Header.Set("Origin", "https://tourism.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)

	assert.Equal(t, "https://tourism.example", w.Header().Get("Access-Control-Allow-Origin"))
}
