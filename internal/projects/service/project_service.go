package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
	"github.com/ProjectMate/go-project-backend/internal/projects/store"
)

// Service handles project-related business logic on top of a Store and
// the template directory.
type Service struct {
	store     store.Store
	templates *store.TemplateLoader
}

func New(st store.Store, templates *store.TemplateLoader) *Service {
	return &Service{store: st, templates: templates}
}

// List returns all stored projects, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.store.List(ctx)
}

// Get returns a single project by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

// Templates lists the available template slugs.
func (s *Service) Templates() ([]string, error) {
	return s.templates.Slugs()
}

// Create seeds a new project from the template named in input and
// persists it. The input is a loose JSON object: a non-empty string
// "template" is required, everything else is coerced by type with
// defaults taken from the template document.
func (s *Service) Create(ctx context.Context, input map[string]any) (*domain.Project, error) {
	slug, _ := input["template"].(string)
	if slug == "" {
		return nil, fmt.Errorf("%w: missing required field: template (string)", errs.ErrInvalidInput)
	}

	tpl, canonical, err := s.templates.Load(slug)
	if err != nil {
		return nil, err
	}

	title := tpl.Title
	if t, ok := input["title"].(string); ok && strings.TrimSpace(t) != "" {
		title = strings.TrimSpace(t)
	}
	if title == "" {
		title = "Untitled Project"
	}

	description := tpl.Description
	if d, ok := input["description"].(string); ok {
		description = d
	}

	submitted, _ := input["submitted"].(bool)
	published, _ := input["published"].(bool)

	refTitle := tpl.Title
	if refTitle == "" {
		refTitle = slug
	}

	now := domain.Now()
	p := &domain.Project{
		ID:          uuid.NewString(),
		Template:    domain.TemplateRef{Slug: canonical, Title: refTitle},
		Title:       title,
		Description: description,
		Submitted:   submitted,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
		Categories:  tpl.Categories,
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the recognized fields from a loose JSON object to an
// existing project. Unknown or wrong-typed fields are dropped.
func (s *Service) Update(ctx context.Context, id string, input map[string]any) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing project id", errs.ErrInvalidInput)
	}
	return s.store.Update(ctx, id, domain.PatchFromMap(input))
}
