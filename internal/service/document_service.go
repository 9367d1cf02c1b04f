package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docvault/internal/model"
	"docvault/internal/policy"
)

// publicIDBytes is the entropy of a public identifier. 24 random bytes
// encode to a 32-character URL-safe token.
const publicIDBytes = 24

// publicIDRetries bounds regeneration when an insert hits the public_id
// uniqueness constraint.
const publicIDRetries = 3

// DocumentStore is the persistence contract for generated documents.
type DocumentStore interface {
	Insert(ctx context.Context, d model.Document) (model.Document, error)
	FindByID(ctx context.Context, id int64) (model.Document, error)
	FindByPublicID(ctx context.Context, publicID string) (model.Document, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error)
	ListAll(ctx context.Context) ([]model.DocumentSummary, error)
}

type DocumentService struct {
	docs DocumentStore
}

func NewDocumentService(docs DocumentStore) *DocumentService {
	return &DocumentService{docs: docs}
}

// Save persists a document for ownerID under a freshly generated public
// identifier.
func (s *DocumentService) Save(ctx context.Context, ownerID int64, req model.SaveDocumentRequest) (model.Document, error) {
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	nationalID := strings.TrimSpace(req.NationalID)
	if name == "" || surname == "" || nationalID == "" {
		return model.Document{}, model.ErrInvalidInput
	}

	doc := model.Document{
		OwnerID:    ownerID,
		Name:       name,
		Surname:    surname,
		NationalID: nationalID,
		Data:       req.Data,
	}

	for attempt := 0; attempt < publicIDRetries; attempt++ {
		publicID, err := newPublicID()
		if err != nil {
			return model.Document{}, err
		}
		doc.PublicID = publicID

		saved, err := s.docs.Insert(ctx, doc)
		if errors.Is(err, model.ErrPublicIDTaken) {
			slog.Warn("public id collision, regenerating", "owner_id", ownerID)
			continue
		}
		if err != nil {
			return model.Document{}, err
		}

		slog.Info("document saved", "document_id", saved.ID, "owner_id", ownerID)
		return saved, nil
	}

	return model.Document{}, model.ErrPublicIDTaken
}

// GetByID returns an owner-scoped document. A requester that is not the
// owner gets ErrDocumentNotFound, the same answer as for an id that does
// not exist.
func (s *DocumentService) GetByID(ctx context.Context, id int64, claims *model.TokenClaims) (model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return model.Document{}, err
	}

	if err := policy.CheckOwner(claims, doc.OwnerID); err != nil {
		return model.Document{}, err
	}

	return doc, nil
}

// GetByPublicID resolves the public link. No ownership check: knowing the
// identifier is sufficient and necessary.
func (s *DocumentService) GetByPublicID(ctx context.Context, publicID string) (model.Document, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return model.Document{}, model.ErrDocumentNotFound
	}

	return s.docs.FindByPublicID(ctx, publicID)
}

func (s *DocumentService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	return s.docs.ListByOwner(ctx, ownerID)
}

func (s *DocumentService) ListAllForAdmin(ctx context.Context) ([]model.DocumentSummary, error) {
	return s.docs.ListAll(ctx)
}

// newPublicID draws publicIDBytes from the system CSPRNG and encodes them
// URL-safe without padding.
func newPublicID() (string, error) {
	buf := make([]byte, publicIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate public id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
