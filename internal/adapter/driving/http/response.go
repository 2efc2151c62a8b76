package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/spellcast/speechvault/internal/application"
	"github.com/spellcast/speechvault/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// CredentialResponse is the JSON representation of a credential. AzureKey is
// always the masked form on list/update/delete responses.
type CredentialResponse struct {
	ID       string        `json:"id"`
	Region   string        `json:"region"`
	AzureKey string        `json:"azure_key"`
	Voices   []model.Voice `json:"voices"`
	Shared   bool          `json:"shared"`
}

// CredentialListResponse wraps the user's credential collection.
type CredentialListResponse struct {
	Message     string               `json:"message,omitempty"`
	Credentials []CredentialResponse `json:"credentials"`
}

// CredentialDetailResponse is the single-credential read result.
type CredentialDetailResponse struct {
	AzureKey string `json:"azure_key"`
	Region   string `json:"region"`
}

// CurrentCredentialResponse reports the newly bound current credential.
type CurrentCredentialResponse struct {
	Message           string `json:"message"`
	CurrentCredential string `json:"current_credential"`
}

// DocumentResponse is the JSON representation of a catalog document.
// UploadURL is populated only on create, when a fresh presigned URL exists.
type DocumentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	UploadURL string `json:"upload_url,omitempty"`
}

// LibraryResponse is the JSON representation of a library entry.
type LibraryResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	DocumentID string `json:"document_id"`
}

// messageResponse is a bare confirmation body.
type messageResponse struct {
	Message string `json:"message"`
}

func toCredentialResponses(creds []application.MaskedCredential) []CredentialResponse {
	out := make([]CredentialResponse, 0, len(creds))
	for _, cred := range creds {
		out = append(out, CredentialResponse{
			ID:       cred.ID,
			Region:   cred.Region,
			AzureKey: cred.Key,
			Voices:   cred.Voices,
			Shared:   cred.Shared,
		})
	}
	return out
}
