package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/model"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Insert persists a new document. A public_id collision surfaces as
// ErrPublicIDTaken so the caller can regenerate and retry; the uniqueness
// constraint makes the collision structural, not a coordination problem.
func (r *DocumentRepository) Insert(ctx context.Context, d model.Document) (model.Document, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO generated_documents (public_id, user_id, name, surname, national_id, data)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		d.PublicID, d.OwnerID, d.Name, d.Surname, d.NationalID, d.Data).
		Scan(&d.ID, &d.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.Document{}, model.ErrPublicIDTaken
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("insert document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (model.Document, error) {
	var d model.Document
	err := r.pool.QueryRow(ctx,
		`SELECT id, public_id, user_id, name, surname, national_id, data, created_at
		 FROM generated_documents WHERE id = $1`, id).
		Scan(&d.ID, &d.PublicID, &d.OwnerID, &d.Name, &d.Surname, &d.NationalID, &d.Data, &d.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, model.ErrDocumentNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) FindByPublicID(ctx context.Context, publicID string) (model.Document, error) {
	var d model.Document
	err := r.pool.QueryRow(ctx,
		`SELECT id, public_id, user_id, name, surname, national_id, data, created_at
		 FROM generated_documents WHERE public_id = $1`, publicID).
		Scan(&d.ID, &d.PublicID, &d.OwnerID, &d.Name, &d.Surname, &d.NationalID, &d.Data, &d.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, model.ErrDocumentNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("find document by public id: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, public_id, user_id, name, surname, national_id, data, created_at
		 FROM generated_documents
		 WHERE user_id = $1
		 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.PublicID, &d.OwnerID, &d.Name, &d.Surname, &d.NationalID, &d.Data, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ListAll returns every document joined with its owner's username, newest
// first. Admin-only callers reach this through the document service.
func (r *DocumentRepository) ListAll(ctx context.Context) ([]model.DocumentSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.public_id, u.username, d.name, d.surname, d.national_id, d.created_at
		 FROM generated_documents d
		 JOIN users u ON d.user_id = u.id
		 ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all documents: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.DocumentSummary, 0)
	for rows.Next() {
		var s model.DocumentSummary
		if err := rows.Scan(&s.ID, &s.PublicID, &s.Username, &s.Name, &s.Surname, &s.NationalID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
