package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter([]byte("secret"), Controllers{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/meals", "/dashboard", "/recipes", "/alerts", "/ws", "/foods/1"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /auth/register", "POST /auth/reset-password",
		"PUT /user/profile", "POST /user/devices",
		"GET /foods/search", "POST /foods/recognize",
		"POST /meals/recipe", "DELETE /meals/:id",
		"GET /stats/summary", "POST /stats/recompute",
		"POST /recipes/select", "DELETE /recipes/pending", "DELETE /recipes/:id",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["POST /dev/push-test"])
}
