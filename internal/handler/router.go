package handler

import (
	"net/http"

	"sebbi-server/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	authHandler *AuthHandler,
	documentHandler *DocumentHandler,
	pdfHandler *PDFHandler,
	questionHandler *QuestionHandler,
	logger domain.Logger,
) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"sebbi-server"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Document routes
	api.HandleFunc("/documents/autocomplete", documentHandler.Autocomplete).Methods("POST")
	api.HandleFunc("/documents", documentHandler.Create).Methods("POST")
	api.HandleFunc("/documents", documentHandler.List).Methods("GET")
	api.HandleFunc("/documents/{id:[0-9]+}", documentHandler.Get).Methods("GET")
	api.HandleFunc("/documents/{id:[0-9]+}", documentHandler.Update).Methods("PUT")
	api.HandleFunc("/documents/{id:[0-9]+}", documentHandler.Delete).Methods("DELETE")

	// PDF routes
	api.HandleFunc("/pdf/upload", pdfHandler.Upload).Methods("POST")
	api.HandleFunc("/pdf/user", pdfHandler.List).Methods("GET")
	api.HandleFunc("/pdf/ask", pdfHandler.Ask).Methods("POST")
	api.HandleFunc("/pdf/cite-apa", pdfHandler.CiteAPA).Methods("POST")
	api.HandleFunc("/pdf/{id:[0-9]+}", pdfHandler.Get).Methods("GET")
	api.HandleFunc("/pdf/{id:[0-9]+}", pdfHandler.Delete).Methods("DELETE")

	// Question routes
	api.HandleFunc("/questions/ask", questionHandler.Ask).Methods("POST")

	// Configure CORS (allow-all, matching the frontend deployment)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(router)
}
