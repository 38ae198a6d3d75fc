package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"mock-interview/internal/catalog"
	"mock-interview/internal/resume"
	"mock-interview/internal/session"
)

// API holds the collaborators every handler needs. It is constructed once at
// startup and injected into the router.
type API struct {
	log       *zap.Logger
	catalog   *catalog.Catalog
	sessions  *session.Store
	extractor resume.Extractor
	maxUpload int64 // bytes
}

func NewAPI(log *zap.Logger, cat *catalog.Catalog, store *session.Store, ex resume.Extractor, maxUpload int64) *API {
	return &API{
		log:       log,
		catalog:   cat,
		sessions:  store,
		extractor: ex,
		maxUpload: maxUpload,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
