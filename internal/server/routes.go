package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Front-end page
	mux.HandleFunc("/", s.app.PageHandler.ServeIndex)

	// API routes - Companies
	mux.HandleFunc("/api/search", s.app.CompanyHandler.SearchHandler)    // GET ?q=<substring>
	mux.HandleFunc("/api/company/", s.app.CompanyHandler.CompanyHandler) // GET /{code}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Unknown API paths answer JSON rather than the page handler's 404
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
