package store

import (
	"context"

	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
)

// Store persists project documents. Implementations do not serialize
// concurrent writers to the same id: the last write wins.
type Store interface {
	// List returns every readable project, newest first (createdAt
	// descending, compared lexically). Corrupt documents are skipped.
	List(ctx context.Context) ([]domain.Project, error)

	// Get returns the project for id, or errs.ErrNotFound if the document
	// is missing or unreadable.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// Create writes a new document keyed by p.ID.
	Create(ctx context.Context, p *domain.Project) error

	// Update loads the document for id, applies the patch, refreshes
	// UpdatedAt and writes it back.
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error)
}
