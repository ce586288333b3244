//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-location-share/internal/database"
	"go-location-share/internal/model"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, url, 2, 0)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, db.Health(ctx))
	return db
}

func TestLocationRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db.Pool)
	ctx := context.Background()

	description := "north entrance"
	created, err := repo.Create(ctx, model.Location{
		ID:          uuid.New(),
		X:           -0.1276,
		Y:           51.5072,
		City:        "London",
		Country:     "United Kingdom",
		Title:       "Trafalgar Square",
		Description: &description,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	assert.Equal(t, "London", created.City)
	assert.Nil(t, created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	newTitle := "Nelson's Column"
	imageURL := "/uploads/" + uuid.NewString() + ".png"
	updated, err := repo.Update(ctx, created.ID, model.UpdateLocationRequest{Title: &newTitle, ImageURL: &imageURL})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "London", updated.City)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, imageURL, *updated.ImageURL)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(all))
	for _, loc := range all {
		ids = append(ids, loc.ID)
	}
	assert.Contains(t, ids, created.ID)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrLocationNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrLocationNotFound)

	_, err = repo.Update(ctx, created.ID, model.UpdateLocationRequest{Title: &newTitle})
	assert.ErrorIs(t, err, model.ErrLocationNotFound)
}

func TestAuditRepositoryLog(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditRepository(db.Pool)

	err := repo.Log(context.Background(), model.AuditEntry{
		Action:     model.AuditActionLogin,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:      model.AuditActor{Subject: "admin", IP: "127.0.0.1"},
		Status:     model.AuditStatusFailure,
		Error:      "invalid credentials",
	})
	require.NoError(t, err)
}
