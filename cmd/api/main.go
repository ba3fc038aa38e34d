package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ProjectMate/go-project-backend/config"
	"github.com/ProjectMate/go-project-backend/internal/bootstrap"
	"github.com/ProjectMate/go-project-backend/internal/genai"
	"github.com/ProjectMate/go-project-backend/internal/projects/store"
)

const serviceName = "go-project-backend"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var st store.Store
	switch cfg.Store.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Store.RedisAddr).Msg("redis not reachable")
		}
		st = store.NewRedisStore(client)
	default:
		st = store.NewFileStore(cfg.Store.ProjectsDir)
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; generation endpoints will return errors")
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Store:       st,
		Templates:   store.NewTemplateLoader(cfg.Store.TemplatesDir),
		GenAI: genai.New(genai.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cfg.Gemini.Timeout,
		}),
		GenerateRPS:   cfg.Generate.RPS,
		GenerateBurst: cfg.Generate.Burst,
	})

	log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("listening")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
