// Package httphandler is the HTTP driving adapter that serves the REST API.
// It parses request bodies, resolves the user identity via the auth
// middleware, and maps domain errors to status codes. No secret ever leaves
// this layer unmasked except on an explicit reveal.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spellcast/speechvault/internal/application"
	"github.com/spellcast/speechvault/internal/domain/model"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	credSvc *application.CredentialService
	subSvc  *application.SubscriptionService
	libSvc  *application.LibraryService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	credSvc *application.CredentialService,
	subSvc *application.SubscriptionService,
	libSvc *application.LibraryService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		credSvc: credSvc,
		subSvc:  subSvc,
		libSvc:  libSvc,
		logger:  logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered. Everything
// except the health probe sits behind the bearer-token auth middleware; the
// whole mux is wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, authSecret []byte, logger *slog.Logger) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /api/v1/user/credentials", h.CreateCredential)
	api.HandleFunc("GET /api/v1/user/credentials", h.ListCredentials)
	api.HandleFunc("GET /api/v1/user/credentials/{id}", h.GetCredential)
	api.HandleFunc("PATCH /api/v1/user/credentials/{id}", h.UpdateCredential)
	api.HandleFunc("DELETE /api/v1/user/credentials/{id}", h.DeleteCredential)
	api.HandleFunc("GET /api/v1/user/voices/{id}", h.GetVoices)
	api.HandleFunc("PATCH /api/v1/user/current_credential", h.SetCurrentCredential)
	api.HandleFunc("GET /api/v1/documents", h.ListDocuments)
	api.HandleFunc("POST /api/v1/documents", h.CreateDocument)
	api.HandleFunc("GET /api/v1/libraries", h.ListLibraries)
	api.HandleFunc("POST /api/v1/libraries", h.CreateLibrary)

	root := http.NewServeMux()
	root.HandleFunc("GET /api/v1/health", h.Health)
	root.Handle("/", authMiddleware(authSecret, logger, api))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, root)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// CreateCredential registers a new speech credential for the caller.
func (h *Handler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Region   string `json:"region"`
		AzureKey string `json:"azure_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Region == "" || req.AzureKey == "" {
		writeError(w, http.StatusBadRequest, "region and azure_key are required")
		return
	}

	if _, err := h.credSvc.Create(r.Context(), userID(r), req.Region, req.AzureKey); err != nil {
		h.writeServiceError(w, err, "create credential")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "credentials created successfully"})
}

// ListCredentials returns the caller's credentials with masked keys.
func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.credSvc.List(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, err, "list credentials")
		return
	}

	writeJSON(w, http.StatusOK, CredentialListResponse{Credentials: toCredentialResponses(creds)})
}

// GetCredential returns one credential, masked unless ?reveal=true.
func (h *Handler) GetCredential(w http.ResponseWriter, r *http.Request) {
	reveal := r.URL.Query().Get("reveal") == "true"

	detail, err := h.credSvc.Get(r.Context(), userID(r), r.PathValue("id"), reveal)
	if err != nil {
		h.writeServiceError(w, err, "get credential")
		return
	}

	writeJSON(w, http.StatusOK, CredentialDetailResponse{AzureKey: detail.Key, Region: detail.Region})
}

// UpdateCredential applies a partial update and returns the full masked list.
func (h *Handler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Region   *string        `json:"region"`
		AzureKey *string        `json:"azure_key"`
		Voices   *[]model.Voice `json:"voices"`
		Shared   *bool          `json:"shared"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := application.CredentialPatch{
		Region: req.Region,
		Key:    req.AzureKey,
		Voices: req.Voices,
		Shared: req.Shared,
	}

	creds, err := h.credSvc.Update(r.Context(), userID(r), r.PathValue("id"), patch)
	if err != nil {
		h.writeServiceError(w, err, "update credential")
		return
	}

	writeJSON(w, http.StatusOK, CredentialListResponse{
		Message:     "updated successfully",
		Credentials: toCredentialResponses(creds),
	})
}

// DeleteCredential removes a credential and returns the remaining masked list.
func (h *Handler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	creds, err := h.credSvc.Delete(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "delete credential")
		return
	}

	writeJSON(w, http.StatusOK, CredentialListResponse{
		Message:     "deleted successfully",
		Credentials: toCredentialResponses(creds),
	})
}

// GetVoices returns the provider voice list for the credential's region.
func (h *Handler) GetVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.credSvc.Voices(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err, "get voices")
		return
	}

	writeJSON(w, http.StatusOK, voices)
}

// SetCurrentCredential binds the caller's subscription to one of their credentials.
func (h *Handler) SetCurrentCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CredentialID string `json:"credential_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CredentialID == "" {
		writeError(w, http.StatusBadRequest, "credential_id is required")
		return
	}

	bound, err := h.subSvc.SetCurrent(r.Context(), userID(r), req.CredentialID)
	if err != nil {
		h.writeServiceError(w, err, "set current credential")
		return
	}

	writeJSON(w, http.StatusOK, CurrentCredentialResponse{
		Message:           "current credential updated",
		CurrentCredential: bound,
	})
}

// CreateDocument records a new document and returns its presigned upload URL.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "name and type are required")
		return
	}

	doc, err := h.libSvc.CreateDocument(r.Context(), userID(r), req.Name, req.Type)
	if err != nil {
		h.writeServiceError(w, err, "create document")
		return
	}

	writeJSON(w, http.StatusCreated, DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Type:      doc.Type,
		UploadURL: doc.FilePath,
	})
}

// ListDocuments returns the full document catalog.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.libSvc.ListDocuments(r.Context(), userID(r))
	if err != nil {
		h.writeServiceError(w, err, "list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, DocumentResponse{ID: doc.ID, Name: doc.Name, Type: doc.Type})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateLibrary links a document into the caller's library.
func (h *Handler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID string `json:"document_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	lib, err := h.libSvc.CreateLibrary(r.Context(), userID(r), req.DocumentID)
	if err != nil {
		h.writeServiceError(w, err, "create library")
		return
	}

	writeJSON(w, http.StatusCreated, LibraryResponse{ID: lib.ID, UserID: lib.UserID, DocumentID: lib.DocumentID})
}

// ListLibraries returns all library entries.
func (h *Handler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := h.libSvc.ListLibraries(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "list libraries")
		return
	}

	resp := make([]LibraryResponse, 0, len(libs))
	for _, lib := range libs {
		resp = append(resp, LibraryResponse{ID: lib.ID, UserID: lib.UserID, DocumentID: lib.DocumentID})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps domain errors to status codes. Client mistakes get
// specific bodies; anything unexpected is logged and hidden behind a generic
// 500 so no internal detail leaks.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrInvalidRegion):
		writeError(w, http.StatusUnprocessableEntity, "invalid region")
	case errors.Is(err, model.ErrInvalidCredential):
		writeError(w, http.StatusUnprocessableEntity, "invalid credentials")
	case errors.Is(err, model.ErrUpstreamUnavailable):
		writeError(w, http.StatusServiceUnavailable, "speech provider unavailable, try again later")
	default:
		h.logger.Error("request failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
