package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectMate/go-project-backend/internal/genai"
	"github.com/ProjectMate/go-project-backend/internal/projects/store"
)

func buildTestRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "templates"), 0o755))

	return BuildRouter(RouterDeps{
		ServiceName:   "go-project-backend",
		Version:       "test",
		Store:         store.NewFileStore(filepath.Join(root, "projects")),
		Templates:     store.NewTemplateLoader(filepath.Join(root, "templates")),
		GenAI:         genai.New(genai.Config{}),
		GenerateRPS:   rps,
		GenerateBurst: burst,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := buildTestRouter(t, 10, 10)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Store   string `json:"store"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "go-project-backend", resp.Service)
	assert.Equal(t, "up", resp.Store)
}

func TestRoutesRegistered(t *testing.T) {
	r := buildTestRouter(t, 10, 10)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/projects"},
		{http.MethodGet, "/templates"},
		{http.MethodGet, "/generate/status"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.NotEqual(t, http.StatusNotFound, w.Code, "%s %s should be routed", route.method, route.path)
	}
}

func TestGenerateGroupIsRateLimited(t *testing.T) {
	r := buildTestRouter(t, 0, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate/status", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
