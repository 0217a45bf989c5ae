package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahanip/batchcost/pkg/application/services/experiment"
	"github.com/sahanip/batchcost/pkg/domain/entities"
)

var errQuantityRequired = errors.New("quantity is required for a quantity action")

func (s *Server) handleRecipeDetail(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	detail, err := s.costing.RecipeDetail(snap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "recipe detail failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRecipeVariants(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	variants, err := s.costing.VariantsWithMetrics(snap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "variant listing failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, variants)
}

func (s *Server) handleVariantDetail(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	detail, err := s.costing.VariantDetail(snap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "variant detail failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	alternatives, err := experiment.Alternatives(snap, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "alternative lookup failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, alternatives)
}

type batchEntryRequest struct {
	VariantID         string          `json:"variant_id" validate:"required"`
	TotalFillQuantity decimal.Decimal `json:"total_fill_quantity" validate:"required"`
	FillUnit          string          `json:"fill_unit" validate:"required"`
}

type batchItemRequest struct {
	ProductID string              `json:"product_id" validate:"required"`
	Variants  []batchEntryRequest `json:"variants" validate:"required,min=1,dive"`
}

type batchRequest struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Items []batchItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (b batchRequest) toEntity() *entities.ProductionBatch {
	batch := &entities.ProductionBatch{ID: b.ID, Name: b.Name}
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	for _, item := range b.Items {
		bi := entities.BatchItem{ProductID: item.ProductID}
		for _, entry := range item.Variants {
			bi.Variants = append(bi.Variants, entities.BatchVariantEntry{
				VariantID:         entry.VariantID,
				TotalFillQuantity: entry.TotalFillQuantity,
				FillUnit:          entities.Unit(entry.FillUnit),
			})
		}
		batch.Items = append(batch.Items, bi)
	}
	return batch
}

func (s *Server) handleAnalyzeAdHoc(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	analysis, err := s.requirements.Analyze(snap, req.toEntity())
	if err != nil {
		s.writeError(w, statusFor(err), "batch analysis failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleBatchRequirements(w http.ResponseWriter, r *http.Request) {
	batch, err := s.batches.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "batch lookup failed", err)
		return
	}

	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	analysis, err := s.requirements.Analyze(snap, batch)
	if err != nil {
		s.writeError(w, statusFor(err), "batch analysis failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleBatchCosts(w http.ResponseWriter, r *http.Request) {
	batch, err := s.batches.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "batch lookup failed", err)
		return
	}

	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	analysis, err := s.requirements.CostAnalysis(snap, batch)
	if err != nil {
		s.writeError(w, statusFor(err), "batch cost analysis failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleProcurement(w http.ResponseWriter, r *http.Request) {
	batch, err := s.batches.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), "batch lookup failed", err)
		return
	}

	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	analysis, err := s.requirements.Analyze(snap, batch)
	if err != nil {
		s.writeError(w, statusFor(err), "batch analysis failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.procurement.Summarize(analysis))
}

type openExperimentRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
}

type openExperimentResponse struct {
	SessionID string `json:"session_id"`
	RecipeID  string `json:"recipe_id"`
}

func (s *Server) handleExperimentOpen(w http.ResponseWriter, r *http.Request) {
	var req openExperimentRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	snap, ok := s.loadSnapshot(r.Context(), w)
	if !ok {
		return
	}

	session, err := experiment.NewSession(snap, req.RecipeID)
	if err != nil {
		s.writeError(w, statusFor(err), "failed to open experiment", err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, openExperimentResponse{SessionID: id, RecipeID: req.RecipeID})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*experiment.Session, bool) {
	s.mu.Lock()
	session, ok := s.sessions[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "experiment session not found", nil)
		return nil, false
	}
	return session, true
}

func (s *Server) handleExperimentSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	summary := session.Summary()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, summary)
}

type experimentEditRequest struct {
	Action             string           `json:"action" validate:"required,oneof=quantity supplier remove restore lock reset"`
	Quantity           *decimal.Decimal `json:"quantity,omitempty"`
	SupplierMaterialID string           `json:"supplier_material_id,omitempty"`
	Reason             string           `json:"reason,omitempty"`
}

func (s *Server) handleExperimentEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "ingredient index must be an integer", err)
		return
	}

	var req experimentEditRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	s.mu.Lock()
	switch req.Action {
	case "quantity":
		if req.Quantity == nil {
			err = errQuantityRequired
		} else {
			err = session.SetQuantity(index, *req.Quantity)
		}
	case "supplier":
		err = session.SetSupplier(index, req.SupplierMaterialID)
	case "remove":
		err = session.Remove(index)
	case "restore":
		err = session.Restore(index)
	case "lock":
		err = session.TogglePriceLock(index, req.Reason, time.Now().UTC())
	case "reset":
		err = session.ResetOne(index)
	}
	var summary any
	if err == nil {
		summary = session.Summary()
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, http.StatusBadRequest, "experiment edit failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExperimentReset(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	session.ResetAll()
	summary := session.Summary()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, summary)
}

type commitExperimentRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) handleExperimentCommit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req commitExperimentRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	s.mu.Lock()
	variant, err := session.Commit(req.Name, time.Now().UTC())
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "experiment commit failed", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, variant)
}

func (s *Server) handleExperimentClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "experiment session not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
