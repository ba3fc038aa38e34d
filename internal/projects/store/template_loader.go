package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
)

// TemplateLoader reads seed templates from a directory, one {slug}.json
// per template. Templates are never written by this service.
type TemplateLoader struct {
	dir string
}

func NewTemplateLoader(dir string) *TemplateLoader {
	return &TemplateLoader{dir: dir}
}

// Load resolves a slug (or filename) to its template document. The
// returned slug is canonical, without the .json suffix. Template fields
// are coerced tolerantly: a missing or wrong-typed title/description is
// treated as empty rather than rejected.
func (l *TemplateLoader) Load(slug string) (*domain.Template, string, error) {
	file := slug
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}

	raw, err := os.ReadFile(filepath.Join(l.dir, file))
	if err != nil {
		return nil, "", fmt.Errorf("%w: template not found or invalid JSON: %s", errs.ErrNotFound, file)
	}

	var doc struct {
		Title       any             `json:"title"`
		Description any             `json:"description"`
		Categories  json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: template not found or invalid JSON: %s", errs.ErrNotFound, file)
	}

	tpl := &domain.Template{Categories: doc.Categories}
	if t, ok := doc.Title.(string); ok {
		tpl.Title = t
	}
	if d, ok := doc.Description.(string); ok {
		tpl.Description = d
	}
	if tpl.Categories == nil {
		tpl.Categories = json.RawMessage(`{}`)
	}
	return tpl, strings.TrimSuffix(file, ".json"), nil
}

// Slugs lists the available template slugs, sorted.
func (l *TemplateLoader) Slugs() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", errs.ErrStorage, err)
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(slugs)
	return slugs, nil
}
