package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(redactionHandler *RedactionHandler, corsOrigin string) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "document-redaction-api"})
	}).Methods("GET")

	router.HandleFunc("/", redactionHandler.Root).Methods("GET")
	router.HandleFunc("/analyze-text", redactionHandler.AnalyzeText).Methods("POST")
	router.HandleFunc("/analyze-pdf", redactionHandler.AnalyzePDF).Methods("POST")
	router.HandleFunc("/redaction-job/{job_id}", redactionHandler.GetJobStatus).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
