// Package httpapi exposes the costing, experimentation and batch
// planning services over a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/sahanip/batchcost/pkg/application/services/costing"
	"github.com/sahanip/batchcost/pkg/application/services/experiment"
	"github.com/sahanip/batchcost/pkg/application/services/procurement"
	"github.com/sahanip/batchcost/pkg/application/services/requirements"
	"github.com/sahanip/batchcost/pkg/application/snapshot"
	"github.com/sahanip/batchcost/pkg/domain/repositories"
)

// Server wires the application services to HTTP handlers. Every
// request loads a fresh snapshot; experiment sessions keep the
// snapshot they were opened with.
type Server struct {
	loader       *snapshot.Loader
	batches      repositories.BatchRepository
	costing      *costing.Service
	requirements *requirements.Service
	procurement  *procurement.Service
	validate     *validator.Validate
	log          *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*experiment.Session
}

// NewServer creates an HTTP server over the given loader and batch
// repository
func NewServer(loader *snapshot.Loader, batches repositories.BatchRepository, log *logrus.Logger) *Server {
	return &Server{
		loader:       loader,
		batches:      batches,
		costing:      costing.New(),
		requirements: requirements.New(),
		procurement:  procurement.New(),
		validate:     validator.New(),
		log:          log,
		sessions:     make(map[string]*experiment.Session),
	}
}

// Router builds the chi router with all routes mounted
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/recipes/{id}", s.handleRecipeDetail)
	r.Get("/recipes/{id}/variants", s.handleRecipeVariants)
	r.Get("/variants/{id}", s.handleVariantDetail)
	r.Get("/supplier-materials/{id}/alternatives", s.handleAlternatives)

	r.Post("/batches/analyze", s.handleAnalyzeAdHoc)
	r.Get("/batches/{id}/requirements", s.handleBatchRequirements)
	r.Get("/batches/{id}/costs", s.handleBatchCosts)
	r.Get("/batches/{id}/procurement", s.handleProcurement)

	r.Post("/experiments", s.handleExperimentOpen)
	r.Get("/experiments/{id}", s.handleExperimentSummary)
	r.Post("/experiments/{id}/ingredients/{index}", s.handleExperimentEdit)
	r.Post("/experiments/{id}/reset", s.handleExperimentReset)
	r.Post("/experiments/{id}/commit", s.handleExperimentCommit)
	r.Delete("/experiments/{id}", s.handleExperimentClose)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"elapsed": time.Since(started),
			}).Debug("request handled")
		}
	})
}

func (s *Server) loadSnapshot(ctx context.Context, w http.ResponseWriter) (*snapshot.Snapshot, bool) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load data", err)
		return nil, false
	}
	return snap, true
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed JSON body", err)
		return false
	}
	if err := s.validate.Struct(payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && s.log != nil {
		s.log.WithError(err).Error("write response")
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
		if s.log != nil && status >= http.StatusInternalServerError {
			s.log.WithError(err).Error(message)
		}
	}
	s.writeJSON(w, status, resp)
}

// statusFor maps domain errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, requirements.ErrInvalidBatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
