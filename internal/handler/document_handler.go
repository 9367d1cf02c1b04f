package handler

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"docvault/internal/middleware"
	"docvault/internal/model"
	"docvault/internal/render"
	"docvault/internal/service"
	"docvault/pkg/apierror"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.SaveDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	doc, err := h.documents.Save(r.Context(), claims.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.SaveDocumentResult{ID: doc.ID, PublicID: doc.PublicID})
}

func (h *DocumentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	docs, err := h.documents.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.DocumentList{Documents: docs})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := documentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.documents.GetByID(r.Context(), id, claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, doc)
}

// Download renders an owned document into a printable HTML file served as
// an attachment named after its holder.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := documentID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := h.documents.GetByID(r.Context(), id, claims)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.html", doc.Name, doc.Surname)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if err := render.Document(w, doc); err != nil {
		// Headers are already written; nothing sensible left to send.
		return
	}
}

// Public resolves a document by its public identifier. No token, no
// ownership check; the identifier is the credential.
func (h *DocumentHandler) Public(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "public_id")
	if publicID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "public id is required", "public_id", http.StatusBadRequest))
		return
	}

	doc, err := h.documents.GetByPublicID(r.Context(), publicID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, doc.Public())
}

func documentID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.New("BAD_REQUEST", "invalid document id", raw, http.StatusBadRequest)
	}
	return id, nil
}
