// Package server provides the HTTP server of the ProductForge API.
// This file defines the route tree, the middleware chain, and CORS handling.
package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/constants"
	"github.com/productforge/backend/internal/middleware"
	"github.com/productforge/backend/internal/utils"
)

const (
	corsAllowMethods  = "GET, POST, OPTIONS"
	corsAllowHeaders  = "Accept, Authorization, Content-Type, X-Request-ID"
	corsExposeHeaders = "Content-Disposition, X-Export-Message, X-Request-ID, Retry-After"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check, version, and route documentation (always public)
// - Humanization endpoints
// - Export and export history endpoints
//
// Everything under /api except the route documentation requires a bearer
// token when a JWT secret is configured.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Base middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(corsMiddleware(s.Config.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	// Unprotected routes
	r.Get(constants.HealthPath, s.Handlers.GenericHandler.Health)
	r.Get(constants.VersionPath, s.Handlers.GenericHandler.Version)
	r.Get(constants.RoutesPath, s.GetAPIRoutes)

	// API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.jwtService))

		r.Route(constants.HumanizeBasePath, func(r chi.Router) {
			r.Post("/", s.Handlers.HumanizeHandler.Humanize)
			r.Get("/profiles", s.Handlers.HumanizeHandler.ListProfiles)
		})

		r.Route(constants.ExportBasePath, func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if s.limiter != nil {
					r.Use(middleware.RateLimit(s.limiter, constants.RateCategoryExport))
				}
				r.Post("/", s.Handlers.ExportHandler.Export)
			})

			r.Get("/formats", s.Handlers.ExportHandler.ListFormats)

			r.Route("/history", func(r chi.Router) {
				r.Use(chimiddleware.NoCache)
				r.Get("/", s.Handlers.ExportHandler.GetHistory)
				r.Get("/stats", s.Handlers.ExportHandler.GetHistoryStats)
			})
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
//
// This method is primarily used for testing and for
// integrating the router with other components.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// corsMiddleware creates a CORS middleware for the configured origins.
//
// Parameters:
//   - cors: The allowed origins and whether credentials are allowed
//
// Returns:
//   - A middleware function that adds CORS headers to responses
//
// Requests from origins not in the list pass through without CORS headers.
// Preflight requests from allowed origins are answered directly with 204.
// The download headers are exposed so the browser client can read the
// filename and outcome message of an export.
func corsMiddleware(cors config.CORSSettings) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(cors.AllowedOrigins))
	for _, origin := range cors.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !(allowAll || allowed[origin]) {
				next.ServeHTTP(w, r)
				return
			}

			// A wildcard cannot be combined with credentials, so echo the origin instead
			if allowAll && !cors.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			if cors.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set(constants.HeaderAccessControlExposeHeaders, corsExposeHeaders)

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Handle OPTIONS preflight requests
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(constants.CACHEControlMaxAge))
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// GetAPIRoutes returns documentation about all API routes.
// This provides a self-documenting endpoint describing each route, the body
// it expects, and what it returns.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	authHeader := "none"
	if s.jwtService.Enabled() {
		authHeader = "Authorization: Bearer <token>"
	}

	routes := map[string]interface{}{}

	routes["system"] = map[string]interface{}{
		"GET " + constants.HealthPath: map[string]interface{}{
			"description": "Service health, including the history database when one is used",
			"response":    `{"status": "healthy", "version": "string"}`,
		},
		"GET " + constants.VersionPath: map[string]interface{}{
			"description": "Application name, version, and environment",
		},
		"GET " + constants.RoutesPath: map[string]interface{}{
			"description": "This route listing",
		},
	}

	routes["humanize"] = map[string]interface{}{
		"POST " + constants.HumanizeBasePath: map[string]interface{}{
			"description": "Rewrite text so it reads as written by a person",
			"auth":        authHeader,
			"body":        `{"text": "string", "profile": "subtle|moderate|heavy|professional|casual"} or {"text": "string", "options": {"addContractions": true, ...}}`,
			"response":    `{"text": "string", "profile": "string"}`,
		},
		"GET " + constants.HumanizeProfilesPath: map[string]interface{}{
			"description": "List the predefined humanization profiles and their flags",
			"auth":        authHeader,
		},
	}

	routes["export"] = map[string]interface{}{
		"POST " + constants.ExportBasePath: map[string]interface{}{
			"description": "Render a project as a downloadable document",
			"auth":        authHeader,
			"body":        `{"project": {"id", "title", "content", "type", "createdAt"}, "format": "pdf|docx|html|markdown|text", "options": {"includeMetadata": bool}}`,
			"response":    "The document as an attachment; the outcome message is in X-Export-Message",
			"rate_limit":  s.limiter != nil,
		},
		"GET " + constants.ExportFormatsPath: map[string]interface{}{
			"description": "List the supported export formats",
			"auth":        authHeader,
		},
		"GET " + constants.ExportHistoryPath: map[string]interface{}{
			"description": "The caller's export attempts, newest first",
			"auth":        authHeader,
			"query":       "page, page_size",
			"capacity":    s.Config.History.Capacity,
		},
		"GET " + constants.ExportHistoryStatsPath: map[string]interface{}{
			"description": "Counts over the caller's export history",
			"auth":        authHeader,
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
