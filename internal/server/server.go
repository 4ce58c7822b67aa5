// Package server exposes the projection engine as a thin JSON API. The
// engine stays pure; this layer only decodes requests, invokes the
// pipeline, and stores results for later retrieval.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/proforma-forecast/internal/inputs"
	"github.com/iwvelando/proforma-forecast/internal/metrics"
	"github.com/iwvelando/proforma-forecast/internal/projection"
	"github.com/iwvelando/proforma-forecast/internal/scenario"
	"github.com/iwvelando/proforma-forecast/pkg/constants"
	"github.com/iwvelando/proforma-forecast/pkg/irr"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	store       ModelStore
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the proforma API.
func NewHandler(logger *zap.Logger, store ModelStore, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, store: store, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Proforma generation endpoint
	mux.HandleFunc("/api/proforma", h.handleProforma)

	// Stored model retrieval
	mux.HandleFunc("/api/proforma/", h.handleModel)

	// Scenario comparison endpoint
	mux.HandleFunc("/api/scenarios", h.handleScenarios)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// proformaRequest selects a sector and optionally overrides its example
// assumptions. An omitted assumptions block runs the sector defaults.
type proformaRequest struct {
	Sector     string                   `json:"sector"`
	Solar      *inputs.SolarInputs      `json:"solar,omitempty"`
	Consulting *inputs.ConsultingInputs `json:"consulting,omitempty"`
}

type proformaResponse struct {
	ModelID   string                        `json:"modelId"`
	Sector    string                        `json:"sector"`
	Rows      []projection.ForecastRow      `json:"rows"`
	Financing projection.FinancingStructure `json:"financing"`
	Summary   metrics.SummaryTotals         `json:"summary"`
	EquityIRR *float64                      `json:"equityIrr,omitempty"`
	IRRError  string                        `json:"irrError,omitempty"`
	Duration  string                        `json:"duration"`
}

type scenariosRequest struct {
	Sector      string                   `json:"sector"`
	Field       string                   `json:"field"`
	Multipliers []float64                `json:"multipliers"`
	Solar       *inputs.SolarInputs      `json:"solar,omitempty"`
	Consulting  *inputs.ConsultingInputs `json:"consulting,omitempty"`
}

type scenarioEntry struct {
	Multiplier float64                `json:"multiplier"`
	Summary    *metrics.SummaryTotals `json:"summary,omitempty"`
	EquityIRR  *float64               `json:"equityIrr,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type scenariosResponse struct {
	Sector   string          `json:"sector"`
	Field    string          `json:"field"`
	Results  []scenarioEntry `json:"results"`
	Duration string          `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleProforma(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req proformaRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	record, err := resolveInputs(req.Sector, req.Solar, req.Consulting)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	builder := projection.NewBuilder(h.logger)
	schedule, fin, err := builder.BuildSchedule(record)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	resp := proformaResponse{
		ModelID:   uuid.NewString(),
		Sector:    string(record.Sector()),
		Rows:      schedule,
		Financing: fin,
		Summary:   metrics.Summarize(schedule),
	}
	rate, err := metrics.EquityIRR(schedule, fin)
	if err != nil {
		resp.IRRError = err.Error()
	} else {
		resp.EquityIRR = &rate
	}
	resp.Duration = time.Since(start).String()

	payload, err := json.Marshal(resp)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to encode response", "")
		return
	}
	if err := h.store.Save(r.Context(), resp.ModelID, payload); err != nil {
		h.logger.Error("failed to store model",
			zap.String("op", "server.handleProforma"),
			zap.String("modelId", resp.ModelID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to store model", "")
		return
	}

	h.logger.Info("generated proforma",
		zap.String("op", "server.handleProforma"),
		zap.String("sector", resp.Sector),
		zap.String("modelId", resp.ModelID),
		zap.Int("rows", len(resp.Rows)),
	)
	h.respondRaw(w, http.StatusOK, payload)
}

func (h *handler) handleModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/proforma/")
	if id == "" || strings.Contains(id, "/") {
		h.respondError(w, http.StatusBadRequest, "model id required", "")
		return
	}

	payload, found, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch model",
			zap.String("op", "server.handleModel"),
			zap.String("modelId", id),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to fetch model", "")
		return
	}
	if !found {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("no model with id %s", id), "")
		return
	}
	h.respondRaw(w, http.StatusOK, payload)
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req scenariosRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.Field == "" {
		h.respondError(w, http.StatusBadRequest, "field is required", "")
		return
	}
	if len(req.Multipliers) == 0 {
		h.respondError(w, http.StatusBadRequest, "at least one multiplier is required", "")
		return
	}

	record, err := resolveInputs(req.Sector, req.Solar, req.Consulting)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	runner := scenario.NewRunner(h.logger)
	set := runner.Run(record, req.Field, req.Multipliers)

	resp := scenariosResponse{
		Sector:  string(record.Sector()),
		Field:   req.Field,
		Results: make([]scenarioEntry, 0, len(set)),
	}
	for _, result := range set {
		entry := scenarioEntry{Multiplier: result.Multiplier}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		} else {
			summary := result.Summary
			rate := result.EquityIRR
			entry.Summary = &summary
			entry.EquityIRR = &rate
		}
		resp.Results = append(resp.Results, entry)
	}
	resp.Duration = time.Since(start).String()

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// resolveInputs picks the assumption record for the requested sector,
// falling back to the sector's canonical defaults when the request body
// carries no assumptions.
func resolveInputs(sectorName string, solar *inputs.SolarInputs, consulting *inputs.ConsultingInputs) (inputs.ProjectInputs, error) {
	sector, err := inputs.ParseSector(sectorName)
	if err != nil {
		return nil, err
	}
	switch sector {
	case inputs.SectorSolar:
		if solar != nil {
			return *solar, nil
		}
	case inputs.SectorConsulting:
		if consulting != nil {
			return *consulting, nil
		}
	}
	return inputs.Default(sector)
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), "")
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err), "")
		return false
	}
	return true
}

// respondEngineError maps the engine's error taxonomy onto HTTP statuses:
// unusable assumptions are the client's to fix, unsolvable IRR series are
// reported with the offending context, and anything else is a 500.
func (h *handler) respondEngineError(w http.ResponseWriter, err error) {
	var invalidErr *projection.InvalidAssumptionError
	if errors.As(err, &invalidErr) {
		h.respondError(w, http.StatusUnprocessableEntity, invalidErr.Error(), invalidErr.Field)
		return
	}
	var ncErr *irr.NoConvergenceError
	if errors.As(err, &ncErr) {
		h.respondError(w, http.StatusUnprocessableEntity, ncErr.Error(), "")
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error(), "")
}

func (h *handler) respondError(w http.ResponseWriter, status int, message, field string) {
	h.respondJSON(w, status, errorResponse{Error: message, Field: field})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.respondRaw(w, status, payload)
}

func (h *handler) respondRaw(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
