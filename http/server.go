package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/pokedex"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server exposes the catalog over HTTP. It is thin glue: all extraction
// and caching behavior lives behind the service interfaces.
type Server struct {
	router  chi.Router
	catalog pokedex.CatalogService
	details pokedex.DetailService
	logger  *slog.Logger

	server *http.Server
}

// NewServer constructs a Server with middleware and routes.
func NewServer(catalog pokedex.CatalogService, details pokedex.DetailService, logger *slog.Logger) *Server {
	s := &Server{
		catalog: catalog,
		details: details,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/pokemon", s.handleList)
		r.Get("/pokemon/{name}", s.handleDetails)
		r.Delete("/cache", s.handleClearCache)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving on addr and blocks until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	refs, err := s.catalog.ListReferences(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	ref, err := s.resolveReference(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	details, err := s.details.GetDetails(r.Context(), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	cleared := s.catalog.Clear()
	s.writeJSON(w, http.StatusOK, map[string]bool{"cleared": cleared})
}

// resolveReference finds the catalog entry matching a URL parameter, which
// may be a name (case-insensitive) or a catalog number.
func (s *Server) resolveReference(ctx context.Context, param string) (pokedex.Reference, error) {
	refs, err := s.catalog.ListReferences(ctx)
	if err != nil {
		return pokedex.Reference{}, err
	}

	if number, convErr := strconv.Atoi(param); convErr == nil {
		for _, ref := range refs {
			if ref.Number == number {
				return ref, nil
			}
		}
		return pokedex.Reference{}, pokedex.Errorf(pokedex.ENOTFOUND, "no species with number %d", number)
	}

	for _, ref := range refs {
		if strings.EqualFold(ref.Name, param) {
			return ref, nil
		}
	}
	return pokedex.Reference{}, pokedex.Errorf(pokedex.ENOTFOUND, "species %q not found", param)
}

// statusFromCode maps domain error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case pokedex.EINVALID:
		return http.StatusBadRequest
	case pokedex.ENOTFOUND:
		return http.StatusNotFound
	case pokedex.EUNAVAILABLE:
		return http.StatusBadGateway
	case pokedex.EEXTRACT:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := pokedex.ErrorCode(err)
	if code == pokedex.EINTERNAL {
		s.logger.Error("internal error", "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, statusFromCode(code), errorResponse{
		Code:    code,
		Message: pokedex.ErrorMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// requestID assigns every request a UUID, echoed in the X-Request-ID
// header and available to the logging middleware.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		s.logger.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"remote", host,
			"duration", time.Since(begin),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
