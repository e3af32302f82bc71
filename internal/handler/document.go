package handler

import (
	"errors"
	"net/http"

	"github.com/teamfolio/teamfolio-go/internal/middleware"
	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/service"
)

const maxDocumentBody = 10 << 20 // 10MB

// DocumentHandler handles HTTP requests for documents.
type DocumentHandler struct {
	service *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// HandleCreate handles POST /api/auth/doc requests.
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
		return
	}

	var req model.DocumentRequest
	if !decodeJSON(w, r, maxDocumentBody, &req) {
		return
	}

	doc, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidObjects) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, "create document failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"document": doc})
}

// HandleList handles GET /api/auth/documents requests.
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
		return
	}

	docs, err := h.service.ListForOwner(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentsNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		internalError(w, r, "list documents failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}
