package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"docvault/internal/model"
	"docvault/internal/service"
	"docvault/pkg/apierror"
)

type AdminHandler struct {
	auth      *service.AuthService
	documents *service.DocumentService
}

func NewAdminHandler(auth *service.AuthService, documents *service.DocumentService) *AdminHandler {
	return &AdminHandler{auth: auth, documents: documents}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AccountList{Users: accounts})
}

func (h *AdminHandler) SetAccess(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	raw := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, apierror.New("BAD_REQUEST", "invalid user id", raw, http.StatusBadRequest))
		return
	}

	var payload model.SetAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if payload.HasAccess == nil {
		writeError(w, apierror.New("BAD_REQUEST", "has_access is required", "has_access", http.StatusBadRequest))
		return
	}

	account, err := h.auth.SetAccess(r.Context(), userID, *payload.HasAccess)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, account)
}

func (h *AdminHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.documents.ListAllForAdmin(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.DocumentSummaryList{Documents: summaries})
}
