package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
)

// FileStore keeps one pretty-printed JSON document per project under a
// directory, filename {id}.json. The directory is created on demand.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) List(ctx context.Context) ([]domain.Project, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", errs.ErrStorage, err)
	}

	items := make([]domain.Project, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var p domain.Project
		if err := json.Unmarshal(raw, &p); err != nil {
			// skip invalid file
			continue
		}
		items = append(items, p)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	raw, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, id)
	}
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: project %s", errs.ErrNotFound, id)
	}
	return &p, nil
}

func (s *FileStore) Create(ctx context.Context, p *domain.Project) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create projects dir: %v", errs.ErrStorage, err)
	}
	return s.write(p)
}

func (s *FileStore) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(patch)
	p.UpdatedAt = domain.Now()
	if err := s.write(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FileStore) write(p *domain.Project) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal project %s: %v", errs.ErrStorage, p.ID, err)
	}
	if err := os.WriteFile(s.path(p.ID), raw, 0o644); err != nil {
		return fmt.Errorf("%w: save project %s: %v", errs.ErrStorage, p.ID, err)
	}
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
