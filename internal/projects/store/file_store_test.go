package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
)

func sampleProject(id, title, createdAt string) *domain.Project {
	return &domain.Project{
		ID:          id,
		Template:    domain.TemplateRef{Slug: "engineering-design-process", Title: "Engineering Design Process"},
		Title:       title,
		Description: "a project",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Categories:  json.RawMessage(`{"plan":[]}`),
	}
}

func TestFileStore_CreateAndGetRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "projects"))
	ctx := context.Background()

	p := sampleProject("p1", "First", "2024-01-01T00:00:00Z")
	require.NoError(t, s.Create(ctx, p))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)

	// Categories are re-indented on disk, so compare them as JSON and the
	// rest byte-for-byte.
	assert.JSONEq(t, string(p.Categories), string(got.Categories))
	p.Categories, got.Categories = nil, nil
	assert.Equal(t, p, got)
}

func TestFileStore_GetUnknownID(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFileStore_GetCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	s := NewFileStore(dir)
	_, err := s.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStore_ListSkipsCorruptDocuments(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, sampleProject("p1", "First", "2024-01-01T00:00:00Z")))
	require.NoError(t, s.Create(ctx, sampleProject("p2", "Second", "2024-02-01T00:00:00Z")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{{{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestFileStore_ListOrdersByCreatedAtDescending(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, sampleProject("old", "Old", "2023-01-01T00:00:00Z")))
	require.NoError(t, s.Create(ctx, sampleProject("new", "New", "2025-01-01T00:00:00Z")))
	require.NoError(t, s.Create(ctx, sampleProject("mid", "Mid", "2024-01-01T00:00:00Z")))

	noStamp := sampleProject("none", "NoStamp", "")
	require.NoError(t, s.Create(ctx, noStamp))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []string{"new", "mid", "old", "none"}, []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID})
}

func TestFileStore_UpdateAppliesPatchAndRefreshesUpdatedAt(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	created := sampleProject("p1", "First", time.Now().UTC().Add(-time.Hour).Format(time.RFC3339))
	require.NoError(t, s.Create(ctx, created))

	published := true
	got, err := s.Update(ctx, "p1", domain.Patch{Published: &published})
	require.NoError(t, err)

	assert.True(t, got.Published)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.JSONEq(t, string(created.Categories), string(got.Categories))
	assert.GreaterOrEqual(t, got.UpdatedAt, created.UpdatedAt)

	// The write must be durable.
	reloaded, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestFileStore_UpdateUnknownID(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Update(context.Background(), "missing", domain.Patch{})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
