package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectMate/go-project-backend/internal/assistant"
	assistanthttp "github.com/ProjectMate/go-project-backend/internal/assistant/http"
	"github.com/ProjectMate/go-project-backend/internal/genai"
	genaihttp "github.com/ProjectMate/go-project-backend/internal/genai/http"
	"github.com/ProjectMate/go-project-backend/internal/httpapi"
	"github.com/ProjectMate/go-project-backend/internal/middleware"
	projectshttp "github.com/ProjectMate/go-project-backend/internal/projects/http"
	"github.com/ProjectMate/go-project-backend/internal/projects/service"
	"github.com/ProjectMate/go-project-backend/internal/projects/store"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	Store         store.Store
	Templates     *store.TemplateLoader
	GenAI         *genai.Client
	GenerateRPS   float64
	GenerateBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	projectSvc := service.New(dep.Store, dep.Templates)
	projectshttp.NewHandler(projectSvc).Register(r)

	gen := r.Group("/generate")
	gen.Use(middleware.RateLimit(dep.GenerateRPS, dep.GenerateBurst))
	genaihttp.NewHandler(dep.GenAI).Register(gen)

	helper := assistant.New(dep.GenAI, projectSvc)
	assistanthttp.NewHandler(helper).Register(r)

	return r
}
