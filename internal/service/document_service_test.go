package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Insert(ctx context.Context, d model.Document) (model.Document, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentStore) FindByID(ctx context.Context, id int64) (model.Document, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentStore) FindByPublicID(ctx context.Context, publicID string) (model.Document, error) {
	args := m.Called(ctx, publicID)
	return args.Get(0).(model.Document), args.Error(1)
}

func (m *MockDocumentStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentStore) ListAll(ctx context.Context) ([]model.DocumentSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.DocumentSummary), args.Error(1)
}

func TestDocumentService_Save(t *testing.T) {
	ctx := context.Background()
	request := model.SaveDocumentRequest{
		Name:       "Anna",
		Surname:    "Nowak",
		NationalID: "12345678901",
		Data:       json.RawMessage(`{"city":"Warsaw"}`),
	}

	t.Run("persists with a fresh public id", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)

		store.On("Insert", ctx, mock.MatchedBy(func(d model.Document) bool {
			return d.OwnerID == 7 && d.Name == "Anna" && len(d.PublicID) == 32
		})).Return(model.Document{ID: 3, PublicID: "issued", OwnerID: 7}, nil)

		doc, err := svc.Save(ctx, 7, request)
		require.NoError(t, err)
		assert.Equal(t, int64(3), doc.ID)
		assert.Equal(t, "issued", doc.PublicID)

		store.AssertExpectations(t)
	})

	t.Run("missing identity fields are rejected before the store", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)

		for _, req := range []model.SaveDocumentRequest{
			{Surname: "Nowak", NationalID: "1"},
			{Name: "Anna", NationalID: "1"},
			{Name: "Anna", Surname: "Nowak"},
			{Name: "  ", Surname: "Nowak", NationalID: "1"},
		} {
			_, err := svc.Save(ctx, 7, req)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		}

		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("regenerates on public id collision", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)

		store.On("Insert", ctx, mock.Anything).
			Return(model.Document{}, model.ErrPublicIDTaken).Once()
		store.On("Insert", ctx, mock.Anything).
			Return(model.Document{ID: 4, PublicID: "second-try", OwnerID: 7}, nil).Once()

		doc, err := svc.Save(ctx, 7, request)
		require.NoError(t, err)
		assert.Equal(t, "second-try", doc.PublicID)

		// The retried insert must carry a different identifier.
		first := store.Calls[0].Arguments.Get(1).(model.Document).PublicID
		second := store.Calls[1].Arguments.Get(1).(model.Document).PublicID
		assert.NotEqual(t, first, second)
	})

	t.Run("gives up after bounded retries", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)

		store.On("Insert", ctx, mock.Anything).
			Return(model.Document{}, model.ErrPublicIDTaken).Times(publicIDRetries)

		_, err := svc.Save(ctx, 7, request)
		assert.ErrorIs(t, err, model.ErrPublicIDTaken)
		store.AssertExpectations(t)
	})
}

func TestDocumentService_GetByID(t *testing.T) {
	ctx := context.Background()
	stored := model.Document{ID: 3, PublicID: "pid", OwnerID: 7, Name: "Anna"}

	t.Run("owner reads the document", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)
		store.On("FindByID", ctx, int64(3)).Return(stored, nil)

		doc, err := svc.GetByID(ctx, 3, &model.TokenClaims{UserID: 7})
		require.NoError(t, err)
		assert.Equal(t, "Anna", doc.Name)
	})

	t.Run("another authenticated user gets not-found", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)
		store.On("FindByID", ctx, int64(3)).Return(stored, nil)

		_, err := svc.GetByID(ctx, 3, &model.TokenClaims{UserID: 8})
		assert.ErrorIs(t, err, model.ErrDocumentNotFound)
	})

	t.Run("unknown id gets the same not-found", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)
		store.On("FindByID", ctx, int64(99)).Return(model.Document{}, model.ErrDocumentNotFound)

		_, err := svc.GetByID(ctx, 99, &model.TokenClaims{UserID: 7})
		assert.ErrorIs(t, err, model.ErrDocumentNotFound)
	})
}

func TestDocumentService_GetByPublicID(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves without ownership check", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)
		store.On("FindByPublicID", ctx, "pid").
			Return(model.Document{ID: 3, PublicID: "pid", OwnerID: 7}, nil)

		doc, err := svc.GetByPublicID(ctx, "pid")
		require.NoError(t, err)
		assert.Equal(t, "pid", doc.PublicID)
	})

	t.Run("blank id never reaches the store", func(t *testing.T) {
		store := new(MockDocumentStore)
		svc := NewDocumentService(store)

		_, err := svc.GetByPublicID(ctx, "   ")
		assert.ErrorIs(t, err, model.ErrDocumentNotFound)
		store.AssertNotCalled(t, "FindByPublicID", mock.Anything, mock.Anything)
	})
}

func TestNewPublicID(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id, err := newPublicID()
		require.NoError(t, err)
		assert.Len(t, id, 32)
		assert.NotContains(t, id, "+")
		assert.NotContains(t, id, "/")
		assert.NotContains(t, id, "=")

		_, dup := seen[id]
		assert.False(t, dup, "duplicate public id generated")
		seen[id] = struct{}{}
	}
}
