package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (live job status updates)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Credentials
	mux.HandleFunc("/api/credentials", s.handleCredentialsRoute) // GET (masked), POST (merge-update)

	// API routes - Query parsing
	mux.HandleFunc("/api/parse-query", s.app.ParseHandler.ParseQueryHandler) // POST - preview structured query

	// API routes - Lead jobs
	mux.HandleFunc("/api/start-scraping", s.app.JobHandler.StartScrapingHandler) // POST - submit search job
	mux.HandleFunc("/api/scraping-jobs", s.app.JobHandler.ListJobsHandler)       // GET - recent jobs, newest first
	mux.HandleFunc("/api/scraping-jobs/", s.handleJobRoutes)                     // GET /{id}, GET /{id}/profiles

	// API routes - Export
	mux.HandleFunc("/api/export-csv/", s.app.ExportHandler.ExportLeadsHandler) // GET /{job_id}?format=csv|xlsx|pdf

	// API routes - Service status
	mux.HandleFunc("/api/health", s.app.StatusHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.StatusHandler.VersionHandler)

	// API root summary plus JSON 404 for unmatched /api/* paths
	mux.HandleFunc("/api/", s.handleAPIRoot)
	mux.HandleFunc("/api", s.app.StatusHandler.RootHandler)

	return mux
}

// handleCredentialsRoute routes credential requests by method
func (s *Server) handleCredentialsRoute(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		"GET":  s.app.CredentialsHandler.GetCredentialsHandler,
		"POST": s.app.CredentialsHandler.SaveCredentialsHandler,
	})
}

// handleJobRoutes routes /api/scraping-jobs/{id} and /api/scraping-jobs/{id}/profiles
func (s *Server) handleJobRoutes(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		"GET": func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/profiles") {
				s.app.JobHandler.GetJobProfilesHandler(w, r)
				return
			}
			s.app.JobHandler.GetJobHandler(w, r)
		},
	})
}

// handleAPIRoot serves the API summary at /api/ and a JSON 404 for
// any /api/* path no other route claimed.
func (s *Server) handleAPIRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/" {
		s.app.StatusHandler.RootHandler(w, r)
		return
	}

	s.app.StatusHandler.NotFoundHandler(w, r)
}
