package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires the interview endpoints. staticDir, when non-empty, is
// served at the root for the wizard frontend.
func NewRouter(a *API, staticDir string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/swagger/", httpSwagger.Handler())

	// Health check (for container orchestrators, load balancers, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.HandleFunc("/api/roles", a.wrap("Failed to list roles", a.RolesHandler))
	mux.HandleFunc("/api/upload-resume", a.wrap("Failed to upload resume due to an unexpected error.", a.UploadResumeHandler))
	mux.HandleFunc("/api/start-interview", a.wrap("Failed to start interview", a.StartInterviewHandler))
	mux.HandleFunc("/api/submit-answer", a.wrap("Failed to submit answer", a.SubmitAnswerHandler))
	mux.HandleFunc("/api/get-feedback", a.wrap("Failed to generate feedback", a.GetFeedbackHandler))

	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return mux
}
