package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectMate/go-project-backend/internal/assistant"
	"github.com/ProjectMate/go-project-backend/internal/projects/service"
	"github.com/ProjectMate/go-project-backend/internal/projects/store"
)

type staticGenerator struct {
	reply string
}

func (g staticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, nil
}

func newTestRouter(t *testing.T, reply string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	templatesDir := filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(templatesDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(templatesDir, "engineering-design-process.json"),
		[]byte(`{"title":"Engineering Design Process","description":"Plan it.","categories":{}}`), 0o644))

	svc := service.New(store.NewFileStore(filepath.Join(root, "projects")), store.NewTemplateLoader(templatesDir))
	helper := assistant.New(staticGenerator{reply: reply}, svc)

	r := gin.New()
	NewHandler(helper).Register(r)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, "/project-assistant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectAssistant_MissingPrompt(t *testing.T) {
	r := newTestRouter(t, `{"action":"none","data":null,"explanation":"hi"}`)

	w := post(r, `{}`)
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)
}

func TestProjectAssistant_NoneAction(t *testing.T) {
	r := newTestRouter(t, `{"action":"none","data":null,"explanation":"Nothing to do."}`)

	w := post(r, `{"userPrompt":"what's up"}`)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	var resp struct {
		Answer  string         `json:"answer"`
		Action  string         `json:"action"`
		Project any            `json:"project"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nothing to do.", resp.Answer)
	assert.Equal(t, "none", resp.Action)
	assert.Nil(t, resp.Project)
}

func TestProjectAssistant_CreateAction(t *testing.T) {
	r := newTestRouter(t, `{"action":"create","data":{"template":"engineering-design-process","title":"Bridge"},"explanation":"Created a bridge project."}`)

	w := post(r, `{"userPrompt":"make a bridge project"}`)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	var resp struct {
		Answer  string         `json:"answer"`
		Action  string         `json:"action"`
		Project map[string]any `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "create", resp.Action)
	require.NotNil(t, resp.Project)
	assert.Equal(t, "Bridge", resp.Project["title"])
	assert.NotEmpty(t, resp.Project["id"])
}
