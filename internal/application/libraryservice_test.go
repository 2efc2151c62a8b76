package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellcast/speechvault/internal/domain/model"
)

type mockDocumentStore struct {
	docs []model.Document
}

func (m *mockDocumentStore) Insert(_ context.Context, doc model.Document) error {
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockDocumentStore) ListAll(_ context.Context) ([]model.Document, error) {
	return m.docs, nil
}

type mockLibraryStore struct {
	libs []model.Library
}

func (m *mockLibraryStore) Insert(_ context.Context, lib model.Library) error {
	m.libs = append(m.libs, lib)
	return nil
}

func (m *mockLibraryStore) ListAll(_ context.Context) ([]model.Library, error) {
	return m.libs, nil
}

type mockObjectStorage struct {
	keys []string
	err  error
}

func (m *mockObjectStorage) PresignUpload(_ context.Context, key, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "https://storage.example.com/" + key + "?signature=abc", nil
}

func newLibraryFixture(t *testing.T) (*LibraryService, *mockDocumentStore, *mockLibraryStore, *mockObjectStorage) {
	t.Helper()

	docs := &mockDocumentStore{}
	libs := &mockLibraryStore{}
	storage := &mockObjectStorage{}
	users := &mockUserStore{known: map[string]bool{userAlice: true}}
	svc := NewLibraryService(users, docs, libs, storage, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, docs, libs, storage
}

func TestLibraryService_CreateDocument(t *testing.T) {
	svc, docs, _, storage := newLibraryFixture(t)

	doc, err := svc.CreateDocument(context.Background(), userAlice, "intro.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "intro.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.Type)
	assert.Contains(t, doc.FilePath, "https://storage.example.com/")
	require.Len(t, docs.docs, 1)

	// Object key namespaces by type and embeds the document id.
	require.Len(t, storage.keys, 1)
	assert.True(t, strings.HasPrefix(storage.keys[0], "application/pdf/"))
	assert.Contains(t, storage.keys[0], doc.ID)
	assert.True(t, strings.HasSuffix(storage.keys[0], "-intro.pdf"))
}

func TestLibraryService_CreateDocumentUnknownUser(t *testing.T) {
	svc, docs, _, _ := newLibraryFixture(t)

	_, err := svc.CreateDocument(context.Background(), "no-such-user", "a.txt", "text/plain")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Empty(t, docs.docs)
}

func TestLibraryService_CreateDocumentPresignFailure(t *testing.T) {
	svc, docs, _, storage := newLibraryFixture(t)
	storage.err = errors.New("storage unreachable")

	_, err := svc.CreateDocument(context.Background(), userAlice, "a.txt", "text/plain")
	require.Error(t, err)
	assert.Empty(t, docs.docs)
}

func TestLibraryService_CreateLibrary(t *testing.T) {
	svc, _, libs, _ := newLibraryFixture(t)

	lib, err := svc.CreateLibrary(context.Background(), userAlice, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, userAlice, lib.UserID)
	assert.Equal(t, "doc-1", lib.DocumentID)
	require.Len(t, libs.libs, 1)
}

func TestLibraryService_Lists(t *testing.T) {
	svc, docs, libs, _ := newLibraryFixture(t)
	docs.docs = []model.Document{{ID: "d1"}}
	libs.libs = []model.Library{{ID: "l1"}}

	gotDocs, err := svc.ListDocuments(context.Background(), userAlice)
	require.NoError(t, err)
	assert.Len(t, gotDocs, 1)

	gotLibs, err := svc.ListLibraries(context.Background())
	require.NoError(t, err)
	assert.Len(t, gotLibs, 1)
}
