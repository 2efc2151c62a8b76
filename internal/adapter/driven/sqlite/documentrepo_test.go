package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellcast/speechvault/internal/domain/model"
)

func TestDocumentRepo_InsertAndListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	doc := model.Document{
		ID:       uuid.NewString(),
		Name:     "intro.pdf",
		Type:     "application/pdf",
		FilePath: "https://storage.example.com/application/pdf/abc-intro.pdf",
	}
	require.NoError(t, repo.Insert(ctx, doc))

	docs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
	assert.Equal(t, "intro.pdf", docs[0].Name)
	assert.False(t, docs[0].CreatedAt.IsZero())
}

func TestLibraryRepo_InsertAndListAll(t *testing.T) {
	db := setupTestDB(t)
	docRepo := NewDocumentRepo(db)
	libRepo := NewLibraryRepo(db)
	ctx := context.Background()
	userID := seedUser(t, db)

	doc := model.Document{ID: uuid.NewString(), Name: "a.txt", Type: "text/plain", FilePath: "https://storage.example.com/a"}
	require.NoError(t, docRepo.Insert(ctx, doc))

	lib := model.Library{ID: uuid.NewString(), UserID: userID, DocumentID: doc.ID}
	require.NoError(t, libRepo.Insert(ctx, lib))

	libs, err := libRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, userID, libs[0].UserID)
	assert.Equal(t, doc.ID, libs[0].DocumentID)
}
